package timelock

import (
	"context"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/gconf"
	"github.com/iov-one/lockbox/x"
	"github.com/tendermint/tendermint/libs/common"
)

// confPkg is the name of the configuration record.
const confPkg = "timelock"

// RegisterRoutes registers the handlers of all messages.
func RegisterRoutes(r lockbox.Registry, auth x.Authenticator) {
	bucket := NewLockBucket()
	r.Handle(&CreateLockMsg{}, &createLockHandler{auth: auth, bucket: bucket})
	r.Handle(&IncreaseLockMsg{}, &increaseLockHandler{auth: auth, bucket: bucket})
	r.Handle(&ReleaseLockMsg{}, &releaseLockHandler{auth: auth, bucket: bucket})
	r.Handle(&ReceiveTokenMsg{}, &receiveTokenHandler{auth: auth, bucket: bucket})
}

// loadController builds a controller using the stored configuration.
func loadController(db lockbox.ReadOnlyKVStore, bucket *LockBucket) (Controller, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return NewController(conf, bucket), nil
}

// signer returns the address of the main signer.
func signer(ctx context.Context, auth x.Authenticator) (lockbox.Address, error) {
	cond := x.MainSigner(ctx, auth)
	if cond == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return cond.Address(), nil
}

// deliverResult converts a receipt into the transaction result.
func deliverResult(ctx context.Context, r *Receipt) (*lockbox.DeliverResult, error) {
	res := &lockbox.DeliverResult{Tags: r.Tags()}
	if r.Action == ActionRelease {
		data, err := EncodeTransfers(r.Transfers)
		if err != nil {
			return nil, err
		}
		res.Data = data
	}
	lockbox.GetLogger(ctx).Debug("timelock", "action", r.Action, "sender", r.Sender, "id", r.ID, "transfers", len(r.Transfers))
	return res, nil
}

// Tags returns the event attributes of the receipt.
func (r *Receipt) Tags() []common.KVPair {
	return []common.KVPair{
		{Key: []byte("action"), Value: []byte(r.Action)},
		{Key: []byte("from"), Value: []byte(r.Sender.String())},
		{Key: []byte("id"), Value: []byte(r.ID)},
	}
}

type createLockHandler struct {
	auth   x.Authenticator
	bucket *LockBucket
}

var _ lockbox.Handler = (*createLockHandler)(nil)

func (h *createLockHandler) Check(ctx context.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

func (h *createLockHandler) Deliver(ctx context.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, sender, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	deposit, err := NativeDeposit{Coins: msg.Funds}.Balance()
	if err != nil {
		return nil, err
	}
	return createLock(ctx, db, h.bucket, sender, msg.ID, msg.ExpiresAt, deposit)
}

func (h *createLockHandler) validate(ctx context.Context, tx lockbox.Tx) (*CreateLockMsg, lockbox.Address, error) {
	var msg CreateLockMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	sender, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, sender, nil
}

func createLock(ctx context.Context, db lockbox.KVStore, bucket *LockBucket, sender lockbox.Address, id string, expiresAt lockbox.UnixTime, deposit *Balance) (*lockbox.DeliverResult, error) {
	now, err := lockbox.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	c, err := loadController(db, bucket)
	if err != nil {
		return nil, err
	}
	r, err := c.CreateLock(db, sender, id, expiresAt, deposit, now)
	if err != nil {
		return nil, err
	}
	return deliverResult(ctx, r)
}

func increaseLock(ctx context.Context, db lockbox.KVStore, bucket *LockBucket, sender lockbox.Address, id string, deposit *Balance) (*lockbox.DeliverResult, error) {
	c, err := loadController(db, bucket)
	if err != nil {
		return nil, err
	}
	r, err := c.IncreaseLock(db, sender, id, deposit)
	if err != nil {
		return nil, err
	}
	return deliverResult(ctx, r)
}

type increaseLockHandler struct {
	auth   x.Authenticator
	bucket *LockBucket
}

var _ lockbox.Handler = (*increaseLockHandler)(nil)

func (h *increaseLockHandler) Check(ctx context.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

func (h *increaseLockHandler) Deliver(ctx context.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, sender, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	deposit, err := NativeDeposit{Coins: msg.Funds}.Balance()
	if err != nil {
		return nil, err
	}
	return increaseLock(ctx, db, h.bucket, sender, msg.ID, deposit)
}

func (h *increaseLockHandler) validate(ctx context.Context, tx lockbox.Tx) (*IncreaseLockMsg, lockbox.Address, error) {
	var msg IncreaseLockMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	sender, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, sender, nil
}

type releaseLockHandler struct {
	auth   x.Authenticator
	bucket *LockBucket
}

var _ lockbox.Handler = (*releaseLockHandler)(nil)

func (h *releaseLockHandler) Check(ctx context.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

func (h *releaseLockHandler) Deliver(ctx context.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	now, err := lockbox.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	c, err := loadController(db, h.bucket)
	if err != nil {
		return nil, err
	}
	r, err := c.ReleaseLock(db, caller, msg.ID, now)
	if err != nil {
		return nil, err
	}
	return deliverResult(ctx, r)
}

func (h *releaseLockHandler) validate(ctx context.Context, tx lockbox.Tx) (*ReleaseLockMsg, lockbox.Address, error) {
	var msg ReleaseLockMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

// receiveTokenHandler handles notifications of token issuers. The signer
// of the notification is the token, the depositor is the sender named in
// the message.
type receiveTokenHandler struct {
	auth   x.Authenticator
	bucket *LockBucket
}

var _ lockbox.Handler = (*receiveTokenHandler)(nil)

func (h *receiveTokenHandler) Check(ctx context.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

func (h *receiveTokenHandler) Deliver(ctx context.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	n, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	deposit, err := n.deposit.Balance()
	if err != nil {
		return nil, err
	}
	switch p := n.payload; {
	case p.Lock != nil:
		return createLock(ctx, db, h.bucket, n.sender, p.Lock.ID, p.Lock.Expire, deposit)
	default:
		return increaseLock(ctx, db, h.bucket, n.sender, p.IncreaseLock.ID, deposit)
	}
}

// notification is a decoded token notification.
type notification struct {
	sender  lockbox.Address
	deposit TokenDeposit
	payload *ReceivePayload
}

func (h *receiveTokenHandler) validate(ctx context.Context, tx lockbox.Tx) (*notification, error) {
	var msg ReceiveTokenMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	token, err := signer(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	sender, err := lockbox.ParseAddress(msg.Sender)
	if err != nil {
		return nil, errors.Wrap(err, "sender")
	}
	payload, err := DecodeReceivePayload(msg.Msg)
	if err != nil {
		return nil, err
	}
	var id string
	if payload.Lock != nil {
		id = payload.Lock.ID
	} else {
		id = payload.IncreaseLock.ID
	}
	if err := validateID(id); err != nil {
		return nil, errors.Field("ID", err, "payload")
	}
	return &notification{
		sender:  sender,
		deposit: TokenDeposit{Token: token, Amount: msg.Amount},
		payload: payload,
	}, nil
}
