package timelock

import (
	"encoding/json"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/gconf"
)

// RegisterQuery exposes locks under "/locks" and the configuration under
// "/timelock/conf".
//
//	/locks         data: owner address followed by the lock ID
//	/locks?prefix  data: owner address, returns all locks of the owner
//
// Values are JSON encoded LockView and Configuration.
func RegisterQuery(qr lockbox.QueryRouter) {
	qr.Register("/locks", &lockQueryHandler{bucket: NewLockBucket()})
	qr.Register("/timelock/conf", confQueryHandler{})
}

type lockQueryHandler struct {
	bucket *LockBucket
}

var _ lockbox.QueryHandler = (*lockQueryHandler)(nil)

func (h *lockQueryHandler) Query(db lockbox.ReadOnlyKVStore, mod string, data []byte) ([]lockbox.Model, error) {
	if len(data) < lockbox.AddressLength {
		return nil, errors.Wrap(errors.ErrInput, "query data must start with an owner address")
	}
	owner := lockbox.Address(data[:lockbox.AddressLength])

	// Queries do not depend on the configuration.
	c := NewController(Configuration{}, h.bucket)

	var views []*LockView
	switch mod {
	case lockbox.KeyQueryMod:
		v, err := c.QueryLock(db, owner, string(data[lockbox.AddressLength:]))
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	case lockbox.PrefixQueryMod:
		if len(data) != lockbox.AddressLength {
			return nil, errors.Wrap(errors.ErrInput, "prefix query data must be an owner address")
		}
		all, err := c.QueryAllLocks(db, owner)
		if err != nil {
			return nil, err
		}
		views = all
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}

	res := make([]lockbox.Model, len(views))
	for i, v := range views {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrModel, "encode view: %s", err)
		}
		res[i] = lockbox.Model{Key: lockKey(v.Owner, v.ID), Value: raw}
	}
	return res, nil
}

type confQueryHandler struct{}

func (confQueryHandler) Query(db lockbox.ReadOnlyKVStore, mod string, data []byte) ([]lockbox.Model, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(&conf)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "encode configuration: %s", err)
	}
	return []lockbox.Model{{Key: []byte(confPkg), Value: raw}}, nil
}
