package gconf

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type limits struct {
	Max   int64  `protobuf:"varint,1,opt,name=max,proto3" json:"max"`
	Owner string `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner"`
}

func (l *limits) Reset()         { *l = limits{} }
func (l *limits) String() string { return proto.CompactTextString(l) }
func (*limits) ProtoMessage()    {}

func (l *limits) Validate() error {
	if l.Max <= 0 {
		return errors.Wrap(errors.ErrModel, "max must be positive")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	err := Load(db, "test", &limits{})
	assert.True(t, errors.ErrNotFound.Is(err))

	err = Save(db, "test", &limits{Max: -1})
	assert.True(t, errors.ErrModel.Is(err))

	require.NoError(t, Save(db, "test", &limits{Max: 10, Owner: "me"}))
	var got limits
	require.NoError(t, Load(db, "test", &got))
	assert.Equal(t, limits{Max: 10, Owner: "me"}, got)
}

func TestInitConfig(t *testing.T) {
	var opts lockbox.Options
	raw := `{"conf": {"test": {"max": 3600, "owner": "anyone"}}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &opts))

	db := store.MemStore()
	err := InitConfig(db, opts, "missing", &limits{})
	assert.True(t, errors.ErrNotFound.Is(err))

	require.NoError(t, InitConfig(db, opts, "test", &limits{}))
	var got limits
	require.NoError(t, Load(db, "test", &got))
	assert.Equal(t, int64(3600), got.Max)

	err = InitConfig(db, opts, "test", &limits{})
	assert.True(t, errors.ErrDuplicate.Is(err))
}
