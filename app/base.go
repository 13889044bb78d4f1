package app

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage and query
// functionality of StoreApp.
type BaseApp struct {
	*StoreApp
	decoder lockbox.TxDecoder
	handler lockbox.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application.
func NewBaseApp(store *StoreApp, decoder lockbox.TxDecoder, handler lockbox.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx dispatches to the handler. The transaction is executed in its
// own cache wrap, written to the block state only on success.
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.loadTx(txBytes)
	if err != nil {
		return deliverTxError(err, b.debug)
	}

	ctx := lockbox.WithLogInfo(b.BlockContext(), "call", "deliver_tx", "path", txPath(tx))

	db := b.DeliverStore().CacheWrap()
	res, err := b.handler.Deliver(ctx, db, tx)
	if err != nil {
		db.Discard()
		return deliverTxError(err, b.debug)
	}
	if err := db.Write(); err != nil {
		return deliverTxError(err, b.debug)
	}
	return res.ToABCI()
}

// CheckTx dispatches to the handler. Successful checks are kept in the
// check state so that later transactions of the same block see them.
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.loadTx(txBytes)
	if err != nil {
		return checkTxError(err, b.debug)
	}

	ctx := lockbox.WithLogInfo(b.BlockContext(), "call", "check_tx", "path", txPath(tx))

	db := b.CheckStore().CacheWrap()
	res, err := b.handler.Check(ctx, db, tx)
	if err != nil {
		db.Discard()
		return checkTxError(err, b.debug)
	}
	if err := db.Write(); err != nil {
		return checkTxError(err, b.debug)
	}
	return res.ToABCI()
}

// loadTx calls the decoder, and captures any panics.
func (b BaseApp) loadTx(txBytes []byte) (tx lockbox.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(txBytes)
}

// txPath returns the path of the transaction message for logging.
func txPath(tx lockbox.Tx) string {
	msg, err := tx.GetMsg()
	if err != nil || msg == nil {
		return ""
	}
	return msg.Path()
}

func deliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseDeliverTx{
		Code: code,
		Log:  log,
	}
}

func checkTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseCheckTx{
		Code: code,
		Log:  log,
	}
}
