package timelock

import (
	"github.com/iov-one/lockbox/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// ReleaseResult is returned as the data of a release transaction.
type ReleaseResult struct {
	Transfers []TransferInstruction `json:"transfers"`
}

// EncodeTransfers serializes the transfer instructions of a release.
func EncodeTransfers(transfers []TransferInstruction) ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(ReleaseResult{Transfers: transfers})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "encode transfers: %s", err)
	}
	return raw, nil
}

// DecodeTransfers parses the data of a release transaction.
func DecodeTransfers(raw []byte) ([]TransferInstruction, error) {
	var res ReleaseResult
	if err := cdc.UnmarshalBinaryBare(raw, &res); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode transfers: %s", err)
	}
	return res.Transfers, nil
}
