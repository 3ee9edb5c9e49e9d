package bid

import (
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	// Tolerance under which two amounts count as the same bid. Covers
	// rounding drift from the wei -> native conversion.
	Tolerance = decimal.RequireFromString("0.0001")

	// MinIncrement is the flat client-side minimum raise in native units.
	// The contract enforces a percentage-based increment; this flat floor is
	// a conservative pre-check only.
	MinIncrement = decimal.RequireFromString("0.001")
)

// FromWei converts a fixed-point chain amount (scaled by 10^18) to native
// units.
func FromWei(wei *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(wei, -18)
}

// AmountsMatch reports whether two amounts are the same bid within
// Tolerance.
func AmountsMatch(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Tolerance)
}

// Resolution is the outcome of comparing the store's highest ACTIVE amount
// with the chain's reported amount for one token.
type Resolution int

const (
	// ResolutionNoChainBid: chain has no active bid; nothing to sync.
	ResolutionNoChainBid Resolution = iota
	// ResolutionInSync: amounts agree within Tolerance.
	ResolutionInSync
	// ResolutionChainAhead: the chain knows a bid the store is missing or a
	// higher one; reconcile chain -> store.
	ResolutionChainAhead
	// ResolutionStoreAhead: the store's amount exceeds the chain's. Flagged
	// drift; returned as-is, not resolved here.
	ResolutionStoreAhead
)

// Resolve is the conflict-resolution table of the synchronizer, pure over
// (storeAmount, chainAmount) so it is testable without I/O. nil means the
// respective source has no active bid.
func Resolve(storeAmount, chainAmount *decimal.Decimal) Resolution {
	if chainAmount == nil {
		return ResolutionNoChainBid
	}
	if storeAmount == nil {
		return ResolutionChainAhead
	}
	if AmountsMatch(*storeAmount, *chainAmount) {
		return ResolutionInSync
	}
	if chainAmount.GreaterThan(*storeAmount) {
		return ResolutionChainAhead
	}
	return ResolutionStoreAhead
}

// MinimumNextBid is the smallest acceptable next bid given the current
// highest bid (nil when there is none).
func MinimumNextBid(current *decimal.Decimal) decimal.Decimal {
	if current == nil {
		return MinIncrement
	}
	return current.Add(MinIncrement)
}
