package timelock

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/gconf"
)

// Initializer stores the configuration from the genesis file:
//
//	"conf": {
//	  "timelock": {
//	    "owner": "<address>",
//	    "max_lock_duration": "1h"
//	  }
//	}
type Initializer struct{}

var _ lockbox.Initializer = Initializer{}

// FromGenesis fails if the configuration is missing, invalid or was
// already stored.
func (Initializer) FromGenesis(opts lockbox.Options, db lockbox.KVStore) error {
	return gconf.InitConfig(db, opts, confPkg, &Configuration{})
}
