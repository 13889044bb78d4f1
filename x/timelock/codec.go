package timelock

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
)

// Models and messages of this package are protobuf messages encoded by
// reflection from their struct tags.

// TokenAmount is an amount of a single fungible token. The token is
// identified by the address of its issuer.
type TokenAmount struct {
	Token  lockbox.Address `protobuf:"bytes,1,opt,name=token,proto3" json:"token"`
	Amount uint64          `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

func (m *TokenAmount) Reset()         { *m = TokenAmount{} }
func (m *TokenAmount) String() string { return proto.CompactTextString(m) }
func (*TokenAmount) ProtoMessage()    {}

// Balance is a native coin amount together with token amounts.
type Balance struct {
	// Native is a normalized set of coins.
	Native []*coin.Coin `protobuf:"bytes,1,rep,name=native,proto3" json:"native,omitempty"`
	// Tokens keeps insertion order. A token appears at most once.
	Tokens []*TokenAmount `protobuf:"bytes,2,rep,name=tokens,proto3" json:"tokens,omitempty"`
}

func (m *Balance) Reset()         { *m = Balance{} }
func (m *Balance) String() string { return proto.CompactTextString(m) }
func (*Balance) ProtoMessage()    {}

// Lock holds funds of a single owner until its expiry time.
type Lock struct {
	Owner     lockbox.Address  `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	ID        string           `protobuf:"bytes,2,opt,name=id,proto3" json:"id"`
	CreatedAt lockbox.UnixTime `protobuf:"varint,3,opt,name=created_at,proto3" json:"created_at"`
	ExpiresAt lockbox.UnixTime `protobuf:"varint,4,opt,name=expires_at,proto3" json:"expires_at"`
	Funds     *Balance         `protobuf:"bytes,5,opt,name=funds,proto3" json:"funds"`
	Completed bool             `protobuf:"varint,6,opt,name=completed,proto3" json:"completed"`
}

func (m *Lock) Reset()         { *m = Lock{} }
func (m *Lock) String() string { return proto.CompactTextString(m) }
func (*Lock) ProtoMessage()    {}

// Configuration is set once from the genesis file.
type Configuration struct {
	// Owner is the address that initialized the lockbox. It has no
	// special rights over locks.
	Owner lockbox.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	// MaxLockDuration limits how far in the future a lock can expire.
	MaxLockDuration lockbox.UnixDuration `protobuf:"varint,2,opt,name=max_lock_duration,proto3" json:"max_lock_duration"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

// CreateLockMsg creates a lock funded with the attached native coins.
type CreateLockMsg struct {
	ID        string           `protobuf:"bytes,1,opt,name=id,proto3" json:"id"`
	ExpiresAt lockbox.UnixTime `protobuf:"varint,2,opt,name=expires_at,proto3" json:"expires_at"`
	Funds     []*coin.Coin     `protobuf:"bytes,3,rep,name=funds,proto3" json:"funds"`
}

func (m *CreateLockMsg) Reset()         { *m = CreateLockMsg{} }
func (m *CreateLockMsg) String() string { return proto.CompactTextString(m) }
func (*CreateLockMsg) ProtoMessage()    {}

// IncreaseLockMsg adds the attached native coins to an existing lock.
type IncreaseLockMsg struct {
	ID    string       `protobuf:"bytes,1,opt,name=id,proto3" json:"id"`
	Funds []*coin.Coin `protobuf:"bytes,2,rep,name=funds,proto3" json:"funds"`
}

func (m *IncreaseLockMsg) Reset()         { *m = IncreaseLockMsg{} }
func (m *IncreaseLockMsg) String() string { return proto.CompactTextString(m) }
func (*IncreaseLockMsg) ProtoMessage()    {}

// ReleaseLockMsg releases an expired lock of the signer.
type ReleaseLockMsg struct {
	ID string `protobuf:"bytes,1,opt,name=id,proto3" json:"id"`
}

func (m *ReleaseLockMsg) Reset()         { *m = ReleaseLockMsg{} }
func (m *ReleaseLockMsg) String() string { return proto.CompactTextString(m) }
func (*ReleaseLockMsg) ProtoMessage()    {}

// ReceiveTokenMsg notifies the lockbox that a token issuer has credited
// Amount tokens to it on behalf of Sender. It must be signed by the
// token issuer, whose address identifies the token. Msg is a JSON encoded
// ReceivePayload telling what to do with the tokens.
type ReceiveTokenMsg struct {
	Sender string `protobuf:"bytes,1,opt,name=sender,proto3" json:"sender"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
	Msg    []byte `protobuf:"bytes,3,opt,name=msg,proto3" json:"msg"`
}

func (m *ReceiveTokenMsg) Reset()         { *m = ReceiveTokenMsg{} }
func (m *ReceiveTokenMsg) String() string { return proto.CompactTextString(m) }
func (*ReceiveTokenMsg) ProtoMessage()    {}
