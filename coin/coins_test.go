package coin

import (
	"testing"

	"github.com/iov-one/lockbox/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinsAddKeepsOrder(t *testing.T) {
	cs, err := CombineCoins(
		NewCoin(1, 0, "zzz"),
		NewCoin(2, 0, "aaa"),
		NewCoin(3, 0, "mmm"),
		NewCoin(4, 0, "aaa"),
		NewCoin(0, 0, "bbb"),
	)
	require.NoError(t, err)
	require.NoError(t, cs.Validate())

	want := Coins{NewCoinp(6, 0, "aaa"), NewCoinp(3, 0, "mmm"), NewCoinp(1, 0, "zzz")}
	assert.True(t, want.Equals(cs), "got %s", cs)
}

func TestCoinsAddDoesNotModifyReceiver(t *testing.T) {
	orig := Coins{NewCoinp(1, 0, "token")}
	sum, err := orig.Add(NewCoin(1, 0, "token"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), orig[0].Whole)
	assert.Equal(t, int64(2), sum[0].Whole)
}

func TestCoinsCombine(t *testing.T) {
	a := Coins{NewCoinp(1, 0, "aaa"), NewCoinp(1, 0, "ccc")}
	b := Coins{NewCoinp(2, 0, "bbb"), NewCoinp(2, 0, "ccc")}

	ab, err := a.Combine(b)
	require.NoError(t, err)
	ba, err := b.Combine(a)
	require.NoError(t, err)
	assert.True(t, ab.Equals(ba))

	_, err = a.Combine(Coins{NewCoinp(MaxInt, 0, "aaa")})
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestCoinsValidate(t *testing.T) {
	cases := map[string]struct {
		coins   Coins
		wantErr *errors.Error
	}{
		"empty":      {coins: nil},
		"normalized": {coins: Coins{NewCoinp(1, 0, "aaa"), NewCoinp(1, 0, "bbb")}},
		"unsorted":   {coins: Coins{NewCoinp(1, 0, "bbb"), NewCoinp(1, 0, "aaa")}, wantErr: errors.ErrAmount},
		"duplicated": {coins: Coins{NewCoinp(1, 0, "aaa"), NewCoinp(1, 0, "aaa")}, wantErr: errors.ErrAmount},
		"zero":       {coins: Coins{NewCoinp(0, 0, "aaa")}, wantErr: errors.ErrAmount},
		"nil coin":   {coins: Coins{nil}, wantErr: errors.ErrAmount},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coins.Validate()
			assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
		})
	}
}

func TestNormalizeCoins(t *testing.T) {
	cs, err := NormalizeCoins([]*Coin{NewCoinp(1, 0, "bbb"), nil, NewCoinp(2, 0, "aaa"), NewCoinp(1, 0, "bbb")})
	require.NoError(t, err)
	assert.Equal(t, "2 aaa, 2 bbb", cs.String())
	assert.False(t, cs.IsEmpty())
	assert.True(t, Coins(nil).IsEmpty())

	_, err = NormalizeCoins([]*Coin{NewCoinp(-1, 0, "aaa")})
	assert.True(t, errors.ErrAmount.Is(err))
}
