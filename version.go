package lockbox

// Version is set with -ldflags during the build.
var Version = "dev"
