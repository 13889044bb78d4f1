package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// ResultSet is the query response encoding. Keys and values of a query
// are returned as two result sets of the same length.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

// MarshalResultSet serializes the result set.
func MarshalResultSet(rs *ResultSet) ([]byte, error) {
	raw, err := proto.Marshal(rs)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal result set: %s", err)
	}
	return raw, nil
}

// UnmarshalResultSet parses a serialized result set.
func UnmarshalResultSet(raw []byte) (*ResultSet, error) {
	var rs ResultSet
	if err := proto.Unmarshal(raw, &rs); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "unmarshal result set: %s", err)
	}
	return &rs, nil
}

// ResultsFromKeys returns a ResultSet of all keys given a set of models.
func ResultsFromKeys(models []lockbox.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values given a set of
// models.
func ResultsFromValues(models []lockbox.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues and makes
// them a consistent whole again.
func JoinResults(keys, values *ResultSet) ([]lockbox.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrap(errors.ErrState, "mismatched result set size")
	}
	mods := make([]lockbox.Model, len(kref))
	for i := range mods {
		mods[i] = lockbox.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}
