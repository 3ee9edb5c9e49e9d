package bid

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestResolve(t *testing.T) {
	cases := []struct {
		name  string
		store *decimal.Decimal
		chain *decimal.Decimal
		want  Resolution
	}{
		{"no data at all", nil, nil, ResolutionNoChainBid},
		{"store only", dec("5"), nil, ResolutionNoChainBid},
		{"chain only", nil, dec("2"), ResolutionChainAhead},
		{"exact match", dec("2"), dec("2"), ResolutionInSync},
		{"match within tolerance", dec("2"), dec("2.00009"), ResolutionInSync},
		{"just outside tolerance", dec("2"), dec("2.0001"), ResolutionChainAhead},
		{"chain ahead", dec("1"), dec("2"), ResolutionChainAhead},
		{"store ahead", dec("5"), dec("2"), ResolutionStoreAhead},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, Resolve(c.store, c.chain))
		})
	}
}

func TestFromWei(t *testing.T) {
	req := require.New(t)

	twoEth, _ := new(big.Int).SetString("2000000000000000000", 10)
	req.True(decimal.RequireFromString("2").Equal(FromWei(twoEth)))

	small := big.NewInt(1)
	req.True(decimal.RequireFromString("0.000000000000000001").Equal(FromWei(small)))

	req.True(FromWei(big.NewInt(0)).IsZero())
}

func TestAmountsMatch(t *testing.T) {
	req := require.New(t)

	req.True(AmountsMatch(decimal.RequireFromString("1"), decimal.RequireFromString("1.00005")))
	req.False(AmountsMatch(decimal.RequireFromString("1"), decimal.RequireFromString("1.0002")))
}

func TestMinimumNextBid(t *testing.T) {
	req := require.New(t)

	// no current bid: flat floor
	req.True(MinIncrement.Equal(MinimumNextBid(nil)))

	// with a current bid, strictly greater than it
	current := dec("1")
	min := MinimumNextBid(current)
	req.True(decimal.RequireFromString("1.001").Equal(min))
	req.True(min.GreaterThan(*current))
}
