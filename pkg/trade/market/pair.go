package trademarket

import (
	"errors"
)

var (
	// ErrInvalidPairSide ...
	ErrInvalidPairSide = errors.New(
		"pair side asset must be a 32-byte array in hex format",
	)
)

// PairSide is one leg of an intended swap. A zero Amount means the amount of
// this side is not set (yet), typically because it is derived from a trade
// preview of the other side.
type PairSide struct {
	Asset  string
	Amount uint64
}

// Pair is the user's intended swap: dispose of From, acquire Dest. At most
// one side's amount is authoritative at a time.
type Pair struct {
	From PairSide
	Dest PairSide
}

// Validate checks whether both sides of the pair reference valid assets.
func (p Pair) Validate() error {
	for _, side := range []PairSide{p.From, p.Dest} {
		if len(side.Asset) != 64 {
			return ErrInvalidPairSide
		}
	}
	if p.From.Asset == p.Dest.Asset {
		return ErrSameAssetPair
	}
	return nil
}

// Matches returns whether the market trades the pair's assets, in either
// order.
func (m Market) Matches(pair Pair) bool {
	return (m.BaseAsset == pair.From.Asset && m.QuoteAsset == pair.Dest.Asset) ||
		(m.BaseAsset == pair.Dest.Asset && m.QuoteAsset == pair.From.Asset)
}
