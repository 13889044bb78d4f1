package coin

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/lockbox/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinAdd(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"whole values": {
			a:    NewCoin(2, 0, "token"),
			b:    NewCoin(3, 0, "token"),
			want: NewCoin(5, 0, "token"),
		},
		"fractional carry": {
			a:    NewCoin(1, 600000000, "token"),
			b:    NewCoin(0, 500000000, "token"),
			want: NewCoin(2, 100000000, "token"),
		},
		"different currencies": {
			a:       NewCoin(1, 0, "token"),
			b:       NewCoin(1, 0, "other"),
			wantErr: errors.ErrCurrency,
		},
		"overflow": {
			a:       NewCoin(MaxInt, 0, "token"),
			b:       NewCoin(1, 0, "token"),
			wantErr: errors.ErrOverflow,
		},
		"overflow through fractional carry": {
			a:       NewCoin(MaxInt, MaxFrac, "token"),
			b:       NewCoin(0, 1, "token"),
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"valid":             {coin: NewCoin(2, 0, "token")},
		"upper case ticker": {coin: NewCoin(1, 5, "IOV")},
		"short ticker":      {coin: NewCoin(1, 0, "x"), wantErr: errors.ErrCurrency},
		"negative":          {coin: NewCoin(-1, 0, "token"), wantErr: errors.ErrAmount},
		"too big":           {coin: NewCoin(MaxInt+1, 0, "token"), wantErr: errors.ErrOverflow},
		"fractional range":  {coin: NewCoin(0, FracUnit, "token"), wantErr: errors.ErrOverflow},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coin.Validate()
			assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
		})
	}
}

func TestHumanFormat(t *testing.T) {
	c, err := ParseHumanFormat("2 token")
	require.NoError(t, err)
	assert.Equal(t, NewCoin(2, 0, "token"), c)

	c, err = ParseHumanFormat("1.05 IOV")
	require.NoError(t, err)
	assert.Equal(t, NewCoin(1, 50000000, "IOV"), c)
	assert.Equal(t, "1.05 IOV", c.String())

	_, err = ParseHumanFormat("-1 token")
	assert.True(t, errors.ErrInput.Is(err))

	_, err = ParseHumanFormat("token")
	assert.True(t, errors.ErrInput.Is(err))
}

func TestCoinUnmarshalJSON(t *testing.T) {
	var c Coin
	require.NoError(t, json.Unmarshal([]byte(`"7 token"`), &c))
	assert.Equal(t, NewCoin(7, 0, "token"), c)

	require.NoError(t, json.Unmarshal([]byte(`{"whole": 3, "ticker": "token"}`), &c))
	assert.Equal(t, NewCoin(3, 0, "token"), c)

	assert.Error(t, json.Unmarshal([]byte(`"x token y"`), &c))
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 1, NewCoin(2, 0, "").Compare(NewCoin(1, 9, "")))
	assert.Equal(t, -1, NewCoin(1, 1, "").Compare(NewCoin(1, 2, "")))
	assert.Equal(t, 0, NewCoin(1, 1, "").Compare(NewCoin(1, 1, "")))
	assert.True(t, NewCoin(0, 1, "a").IsPositive())
	assert.False(t, NewCoin(0, 0, "a").IsPositive())
}
