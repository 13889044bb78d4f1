package lockbox

import (
	"context"
	"encoding/json"

	"github.com/iov-one/lockbox/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// Handler processes a specific kind of message.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction without executing it.
type Checker interface {
	Check(ctx context.Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction.
type Deliverer interface {
	Deliver(ctx context.Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide functionality shared by many
// handlers, like authentication.
type Decorator interface {
	Check(ctx context.Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx context.Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is the setup side of a router.
type Registry interface {
	Handle(msg Msg, h Handler)
}

// CheckResult is returned by a successful Check.
type CheckResult struct {
	// Data is an arbitrary result returned to the client.
	Data []byte
	Log  string
}

// ToABCI converts the result into a tendermint response.
func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data: c.Data,
		Log:  c.Log,
	}
}

// DeliverResult is returned by a successful Deliver.
type DeliverResult struct {
	// Data is an arbitrary result returned to the client.
	Data []byte
	Log  string
	// Tags are indexed by tendermint and describe what happened.
	Tags []common.KVPair
}

// ToABCI converts the result into a tendermint response.
func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data: d.Data,
		Log:  d.Log,
		Tags: d.Tags,
	}
}

// Options is the application state from the genesis file. Each extension
// reads its own key.
type Options map[string]json.RawMessage

// ReadOptions decodes the value stored under the key into obj. A missing
// key is not an error and leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw := o[key]
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "option %q: %s", key, err)
	}
	return nil
}

// Initializer sets up the state of an extension from the genesis file.
type Initializer interface {
	FromGenesis(opts Options, db KVStore) error
}

// ChainInitializers runs all initializers in order.
func ChainInitializers(inits ...Initializer) Initializer {
	return initializers(inits)
}

type initializers []Initializer

func (inits initializers) FromGenesis(opts Options, db KVStore) error {
	for _, i := range inits {
		if err := i.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
