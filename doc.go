/*
Package lockbox defines the interfaces shared by all packages of the
lockbox application together with the small value types they exchange:
addresses, unix timestamps and the request context.

Information about the request travels in a context.Context passed from
the application, through decorators, down to handlers. For every value
T named XYZ the package provides a pair of functions:

	WithXYZ(context.Context, T) context.Context
	GetXYZ(context.Context) (T, bool)

Values describing the block (height, time, chain ID) can be set only
once. Setting them again panics, so that no lower level component can
overwrite what the application has decided.
*/
package lockbox
