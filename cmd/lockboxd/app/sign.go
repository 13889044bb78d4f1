package lockboxd

import (
	"github.com/google/uuid"
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/crypto"
	"github.com/iov-one/lockbox/x/sigs"
)

// NewLockID returns a random lock ID.
func NewLockID() string {
	return uuid.New().String()
}

// SignedTx wraps msg in a transaction signed by all signers. Each
// signer uses the sequence at the same position.
func SignedTx(msg lockbox.Msg, chainID string, signers []crypto.Signer, seqs []int64) (*Tx, error) {
	tx := new(Tx)
	if err := tx.SetMsg(msg); err != nil {
		return nil, err
	}
	for i, s := range signers {
		sig, err := sigs.SignTx(s, tx, chainID, seqs[i])
		if err != nil {
			return nil, err
		}
		tx.Signatures = append(tx.Signatures, sig)
	}
	return tx, nil
}
