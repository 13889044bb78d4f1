package app

import (
	"bytes"
	"context"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// setMsg writes Value under Key and fails afterwards if Fail is set.
type setMsg struct {
	Key   []byte `protobuf:"bytes,1,opt,name=key,proto3"`
	Value []byte `protobuf:"bytes,2,opt,name=value,proto3"`
	Fail  bool   `protobuf:"varint,3,opt,name=fail,proto3"`
	Panic bool   `protobuf:"varint,4,opt,name=panic,proto3"`
	// Unique refuses to overwrite an existing value.
	Unique bool `protobuf:"varint,5,opt,name=unique,proto3"`
}

func (m *setMsg) Reset()         { *m = setMsg{} }
func (m *setMsg) String() string { return proto.CompactTextString(m) }
func (*setMsg) ProtoMessage()    {}
func (setMsg) Path() string      { return "test/set" }

func (m *setMsg) Validate() error {
	if len(m.Key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	return nil
}

type setTx struct {
	Msg *setMsg `protobuf:"bytes,1,opt,name=msg,proto3"`
}

func (tx *setTx) Reset()         { *tx = setTx{} }
func (tx *setTx) String() string { return proto.CompactTextString(tx) }
func (*setTx) ProtoMessage()     {}

func (tx *setTx) GetMsg() (lockbox.Msg, error) {
	if tx.Msg == nil {
		return nil, nil
	}
	return tx.Msg, nil
}

func decodeSetTx(raw []byte) (lockbox.Tx, error) {
	var tx setTx
	if err := proto.Unmarshal(raw, &tx); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &tx, nil
}

func mustMarshal(m proto.Message) []byte {
	raw, err := proto.Marshal(m)
	if err != nil {
		panic(err)
	}
	return raw
}

type setHandler struct{}

func (setHandler) Check(ctx context.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	var msg setMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

func (setHandler) Deliver(ctx context.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	var msg setMsg
	if err := lockbox.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if msg.Unique {
		switch ok, err := db.Has(msg.Key); {
		case err != nil:
			return nil, err
		case ok:
			return nil, errors.Wrapf(errors.ErrDuplicate, "key %q", msg.Key)
		}
	}
	if err := db.Set(msg.Key, msg.Value); err != nil {
		return nil, err
	}
	if msg.Panic {
		panic("boom")
	}
	if msg.Fail {
		return nil, errors.Wrap(errors.ErrState, "requested failure")
	}
	return &lockbox.DeliverResult{Data: msg.Value}, nil
}

// kvQuery returns the raw value stored under the key, or all values whose
// key starts with data for a prefix query.
type kvQuery struct{}

func (kvQuery) Query(db lockbox.ReadOnlyKVStore, mod string, data []byte) ([]lockbox.Model, error) {
	if mod == lockbox.PrefixQueryMod {
		it, err := db.Iterator(nil, nil)
		if err != nil {
			return nil, err
		}
		defer it.Release()
		var res []lockbox.Model
		for {
			k, v, err := it.Next()
			if errors.ErrIteratorDone.Is(err) {
				return res, nil
			}
			if err != nil {
				return nil, err
			}
			if bytes.HasPrefix(k, data) {
				res = append(res, lockbox.Model{Key: k, Value: v})
			}
		}
	}
	v, err := db.Get(data)
	if err != nil || v == nil {
		return nil, err
	}
	return []lockbox.Model{{Key: data, Value: v}}, nil
}

// countingDecorator counts calls going in and out.
type countingDecorator struct {
	count int
}

func (c *countingDecorator) Check(ctx context.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Checker) (*lockbox.CheckResult, error) {
	c.count++
	res, err := next.Check(ctx, db, tx)
	c.count++
	return res, err
}

func (c *countingDecorator) Deliver(ctx context.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Deliverer) (*lockbox.DeliverResult, error) {
	c.count++
	res, err := next.Deliver(ctx, db, tx)
	c.count++
	return res, err
}
