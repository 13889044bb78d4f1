package coin

import (
	"sort"
	"strings"

	"github.com/iov-one/lockbox/errors"
)

// Coins is a set of coins, at most one per ticker, sorted by ticker and
// without zero values. Use NormalizeCoins to build one from arbitrary
// input.
type Coins []*Coin

// CombineCoins sums up the given coins into a normalized set.
func CombineCoins(cs ...Coin) (Coins, error) {
	var res Coins
	for _, c := range cs {
		var err error
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Clone returns a deep copy.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add returns a new set with the coin added. The receiver is not modified.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs.Clone(), nil
	}
	i := sort.Search(len(cs), func(i int) bool { return cs[i].Ticker >= c.Ticker })
	res := cs.Clone()
	if i < len(cs) && cs[i].Ticker == c.Ticker {
		sum, err := cs[i].Add(c)
		if err != nil {
			return nil, err
		}
		res[i] = &sum
		return res, nil
	}
	res = append(res, nil)
	copy(res[i+1:], res[i:])
	res[i] = c.Clone()
	return res, nil
}

// Combine returns the sum of both sets. Neither is modified.
func (cs Coins) Combine(o Coins) (Coins, error) {
	res := cs.Clone()
	for _, c := range o {
		var err error
		if res, err = res.Add(*c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// IsEmpty returns true if the set holds no value.
func (cs Coins) IsEmpty() bool {
	for _, c := range cs {
		if c != nil && !c.IsZero() {
			return false
		}
	}
	return true
}

// Equals returns true if both sets hold the same coins.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate checks every coin and that the set is normalized.
func (cs Coins) Validate() error {
	for i, c := range cs {
		if c == nil {
			return errors.Wrapf(errors.ErrAmount, "nil coin at %d", i)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if c.IsZero() {
			return errors.Wrapf(errors.ErrAmount, "zero %s coin", c.Ticker)
		}
		if i > 0 && cs[i-1].Ticker >= c.Ticker {
			return errors.Wrap(errors.ErrAmount, "coins not sorted or duplicated")
		}
	}
	return nil
}

func (cs Coins) String() string {
	if len(cs) == 0 {
		return "(none)"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// NormalizeCoins validates every coin and merges the input into a
// normalized set. Zero values are dropped.
func NormalizeCoins(cs []*Coin) (Coins, error) {
	var res Coins
	for _, c := range cs {
		if c == nil {
			continue
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		var err error
		if res, err = res.Add(*c); err != nil {
			return nil, err
		}
	}
	return res, nil
}
