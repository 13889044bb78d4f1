/*
Package gconf stores per extension configuration.

Each extension keeps a single configuration record under the
"_c:<package>" key. The record is written once from the genesis file
and read by handlers whenever they need it.
*/
package gconf

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// ReadStore is the subset of lockbox.ReadOnlyKVStore used to load a
// configuration.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the subset of lockbox.KVStore used to save a configuration.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Configuration is a protobuf message that can validate itself.
type Configuration interface {
	proto.Message
	Validate() error
}

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates the configuration and writes it for the package.
func Save(db Store, pkg string, src Configuration) error {
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: %s configuration", pkg)
	}
	raw, err := proto.Marshal(src)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "marshal %s configuration: %s", pkg, err)
	}
	return db.Set(key(pkg), raw)
}

// Load reads the configuration of the package into dst. It returns
// ErrNotFound if the package was never configured.
func Load(db ReadStore, pkg string, dst Configuration) error {
	raw, err := db.Get(key(pkg))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	dst.Reset()
	if err := proto.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %s configuration: %s", pkg, err)
	}
	return nil
}

// InitConfig reads opts["conf"][pkg] into conf and saves it. A
// configuration can be initialized only once, a second call fails with
// ErrDuplicate.
func InitConfig(db Store, opts lockbox.Options, pkg string, conf Configuration) error {
	var confOptions lockbox.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if raw, err := db.Get(key(pkg)); err != nil {
		return err
	} else if raw != nil {
		return errors.Wrapf(errors.ErrDuplicate, "%s configuration already initialized", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	return Save(db, pkg, conf)
}
