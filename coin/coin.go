/*
Package coin implements the native asset amounts of lockbox.

A Coin is a fixed point amount of a single currency, split into a whole
and a fractional part (10^-9). Coins is a normalized set of Coin values,
at most one per ticker, sorted by ticker.
*/
package coin

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox/errors"
)

// IsCC tests a currency ticker.
var IsCC = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]{2,15}$`).MatchString

const (
	// MaxInt is the largest whole value accepted.
	MaxInt int64 = 999999999999999 // 10^15-1

	// FracUnit is the number of fractional units in one whole.
	FracUnit int64 = 1000000000
	// MaxFrac is the highest fractional value.
	MaxFrac = FracUnit - 1
)

// Coin is an amount of a single currency.
type Coin struct {
	Whole      int64  `protobuf:"varint,1,opt,name=whole,proto3" json:"whole,omitempty"`
	Fractional int64  `protobuf:"varint,2,opt,name=fractional,proto3" json:"fractional,omitempty"`
	Ticker     string `protobuf:"bytes,3,opt,name=ticker,proto3" json:"ticker,omitempty"`
}

func (c *Coin) Reset()      { *c = Coin{} }
func (*Coin) ProtoMessage() {}

var _ proto.Message = (*Coin)(nil)

// NewCoin returns a coin value.
func NewCoin(whole, fractional int64, ticker string) Coin {
	return Coin{Whole: whole, Fractional: fractional, Ticker: ticker}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(whole, fractional int64, ticker string) *Coin {
	c := NewCoin(whole, fractional, ticker)
	return &c
}

// Add returns the sum of both coins. Both must be of the same currency.
// ErrOverflow is returned if the result exceeds MaxInt.
func (c Coin) Add(o Coin) (Coin, error) {
	if c.Ticker != o.Ticker {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Ticker, c.Ticker)
	}
	c.Whole += o.Whole
	c.Fractional += o.Fractional
	return c.normalize()
}

// Compare ignores the ticker. It returns 1 if c is larger, -1 if o is
// larger and 0 if both are equal.
func (c Coin) Compare(o Coin) int {
	switch {
	case c.Whole > o.Whole:
		return 1
	case c.Whole < o.Whole:
		return -1
	case c.Fractional > o.Fractional:
		return 1
	case c.Fractional < o.Fractional:
		return -1
	default:
		return 0
	}
}

// Equals returns true if all fields are identical.
func (c Coin) Equals(o Coin) bool {
	return c == o
}

// IsZero returns true for a zero amount.
func (c Coin) IsZero() bool {
	return c.Whole == 0 && c.Fractional == 0
}

// IsPositive returns true for an amount greater than zero.
func (c Coin) IsPositive() bool {
	return c.Whole > 0 || (c.Whole == 0 && c.Fractional > 0)
}

// Clone returns an independent copy.
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Validate checks the ticker and the value range. Lock funds can never be
// negative, so neither can a coin.
func (c Coin) Validate() error {
	var err error
	if !IsCC(c.Ticker) {
		err = errors.Append(err, errors.Wrapf(errors.ErrCurrency, "ticker %q", c.Ticker))
	}
	if c.Whole < 0 || c.Fractional < 0 {
		err = errors.Append(err, errors.Wrap(errors.ErrAmount, "negative value"))
	}
	if c.Whole > MaxInt {
		err = errors.Append(err, errors.Wrap(errors.ErrOverflow, "whole"))
	}
	if c.Fractional > MaxFrac {
		err = errors.Append(err, errors.Wrap(errors.ErrOverflow, "fractional"))
	}
	return err
}

// normalize carries the fractional overflow into the whole part.
func (c Coin) normalize() (Coin, error) {
	if c.Fractional > MaxFrac {
		c.Whole += c.Fractional / FracUnit
		c.Fractional %= FracUnit
	}
	if c.Whole > MaxInt {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%d %s", c.Whole, c.Ticker)
	}
	return c, nil
}

// String returns the human readable format accepted by ParseHumanFormat,
// for example "2.5 token".
func (c Coin) String() string {
	s := strconv.FormatInt(c.Whole, 10)
	if c.Fractional != 0 {
		frac := fmt.Sprintf("%09d", c.Fractional)
		s += "." + strings.TrimRight(frac, "0")
	}
	if c.Ticker != "" {
		s += " " + c.Ticker
	}
	return s
}

var humanCoinFormat = regexp.MustCompile(`^(\d+)(?:\.(\d{1,9}))?\s*([a-zA-Z][a-zA-Z0-9]{2,15})$`)

// ParseHumanFormat parses "<whole>[.<fractional>] <ticker>".
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoinFormat.FindStringSubmatch(strings.TrimSpace(h))
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}
	whole, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "whole value: %s", err)
	}
	var frac int64
	if m[2] != "" {
		padded := m[2] + strings.Repeat("0", 9-len(m[2]))
		frac, err = strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return Coin{}, errors.Wrapf(errors.ErrInput, "fractional value: %s", err)
		}
	}
	c := NewCoin(whole, frac, m[3])
	return c, c.Validate()
}

// UnmarshalJSON accepts the human readable string format as well as an
// object.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}
	// A named type without methods avoids recursion.
	type plain Coin
	var p plain
	if err := json.Unmarshal(raw, &p); err != nil {
		return errors.Wrapf(errors.ErrInput, "coin: %s", err)
	}
	*c = Coin(p)
	return nil
}
