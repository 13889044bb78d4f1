package sigs

import (
	"context"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox"
)

// StdTx is a minimal signed transaction carrying opaque bytes.
type StdTx struct {
	Payload    []byte          `protobuf:"bytes,1,opt,name=payload,proto3"`
	Signatures []*StdSignature `protobuf:"bytes,2,rep,name=signatures,proto3"`
}

var _ SignedTx = (*StdTx)(nil)
var _ lockbox.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	return &StdTx{Payload: payload}
}

func (tx *StdTx) Reset()         { *tx = StdTx{} }
func (tx *StdTx) String() string { return proto.CompactTextString(tx) }
func (*StdTx) ProtoMessage()     {}

func (tx *StdTx) GetMsg() (lockbox.Msg, error) {
	return nil, nil
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	return tx.Payload, nil
}

// SigCheckHandler stores the seen signers on each call.
type SigCheckHandler struct {
	Signers []lockbox.Condition
}

var _ lockbox.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx context.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &lockbox.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx context.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &lockbox.DeliverResult{}, nil
}
