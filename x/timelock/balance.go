package timelock

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
)

// NewBalance returns a balance of the given native coins and tokens. The
// coins are normalized and the tokens merged, so the result is always
// valid or an error is returned.
func NewBalance(native []*coin.Coin, tokens ...*TokenAmount) (*Balance, error) {
	coins, err := coin.NormalizeCoins(native)
	if err != nil {
		return nil, err
	}
	b := &Balance{Native: coins}
	for _, t := range tokens {
		if t == nil {
			continue
		}
		if err := b.Merge(&Balance{Tokens: []*TokenAmount{t}}); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// IsEmpty returns true if the balance holds no native coins and no
// tokens.
func (b *Balance) IsEmpty() bool {
	if b == nil {
		return true
	}
	if !coin.Coins(b.Native).IsEmpty() {
		return false
	}
	for _, t := range b.Tokens {
		if t != nil && t.Amount != 0 {
			return false
		}
	}
	return true
}

// Coins returns the native part of the balance.
func (b *Balance) Coins() coin.Coins {
	if b == nil {
		return nil
	}
	return coin.Coins(b.Native)
}

// TokenAmount returns the amount held of the given token.
func (b *Balance) TokenAmount(token lockbox.Address) uint64 {
	if b == nil {
		return 0
	}
	for _, t := range b.Tokens {
		if t.Token.Equals(token) {
			return t.Amount
		}
	}
	return 0
}

// Clone returns a deep copy.
func (b *Balance) Clone() *Balance {
	if b == nil {
		return nil
	}
	res := &Balance{Native: coin.Coins(b.Native).Clone()}
	for _, t := range b.Tokens {
		token := make(lockbox.Address, len(t.Token))
		copy(token, t.Token)
		res.Tokens = append(res.Tokens, &TokenAmount{Token: token, Amount: t.Amount})
	}
	return res
}

// Merge adds other to the balance. Native coins are summed per ticker.
// A token amount is added to the entry of the same token or appended as
// a new entry. On error the balance is not modified.
func (b *Balance) Merge(other *Balance) error {
	if other == nil {
		return nil
	}
	if err := other.Validate(); err != nil {
		return errors.Wrap(err, "merged balance")
	}

	native, err := coin.Coins(b.Native).Combine(other.Native)
	if err != nil {
		return err
	}
	tokens := b.Clone().Tokens
	for _, add := range other.Tokens {
		found := false
		for _, t := range tokens {
			if !t.Token.Equals(add.Token) {
				continue
			}
			sum := t.Amount + add.Amount
			if sum < t.Amount {
				return errors.Wrapf(errors.ErrOverflow, "token %s", add.Token)
			}
			t.Amount = sum
			found = true
			break
		}
		if !found {
			tokens = append(tokens, &TokenAmount{Token: add.Token, Amount: add.Amount})
		}
	}

	b.Native = native
	b.Tokens = tokens
	return nil
}

// Validate returns an error if the balance is not normalized.
func (b *Balance) Validate() error {
	if b == nil {
		return nil
	}
	var err error
	err = errors.AppendField(err, "Native", coin.Coins(b.Native).Validate())
	for i, t := range b.Tokens {
		if t == nil {
			err = errors.Append(err, errors.Field("Tokens", errors.ErrAmount, "nil token at %d", i))
			continue
		}
		if e := t.Token.Validate(); e != nil {
			err = errors.AppendField(err, "Tokens.Token", e)
		}
		if t.Amount == 0 {
			err = errors.Append(err, errors.Field("Tokens.Amount", errors.ErrAmount, "zero amount of %s", t.Token))
		}
		for _, prev := range b.Tokens[:i] {
			if prev != nil && prev.Token.Equals(t.Token) {
				err = errors.Append(err, errors.Field("Tokens", errors.ErrDuplicate, "token %s", t.Token))
			}
		}
	}
	return err
}

// TransferKind tells what asset a transfer instruction moves.
type TransferKind string

const (
	NativeTransfer TransferKind = "native"
	TokenTransfer  TransferKind = "token"
)

// TransferInstruction tells the host to move funds out of the lockbox.
type TransferInstruction struct {
	Kind      TransferKind    `json:"kind"`
	Recipient lockbox.Address `json:"recipient"`
	// Coins is set for a native transfer.
	Coins coin.Coins `json:"coins,omitempty"`
	// Token and Amount are set for a token transfer.
	Token  lockbox.Address `json:"token,omitempty"`
	Amount uint64          `json:"amount,omitempty"`
}

// TransferInstructions returns the transfers paying the whole balance to
// the recipient: a single native transfer if there are any coins,
// followed by one transfer per token in stored order.
func (b *Balance) TransferInstructions(recipient lockbox.Address) []TransferInstruction {
	var res []TransferInstruction
	if b == nil {
		return res
	}
	if coins := b.Coins(); !coins.IsEmpty() {
		res = append(res, TransferInstruction{
			Kind:      NativeTransfer,
			Recipient: recipient,
			Coins:     coins.Clone(),
		})
	}
	for _, t := range b.Tokens {
		if t.Amount == 0 {
			continue
		}
		res = append(res, TransferInstruction{
			Kind:      TokenTransfer,
			Recipient: recipient,
			Token:     t.Token,
			Amount:    t.Amount,
		})
	}
	return res
}
