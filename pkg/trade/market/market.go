package trademarket

import (
	"encoding/hex"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-trader/pkg/registry"
)

var (
	// ErrInvalidBaseAsset ...
	ErrInvalidBaseAsset = errors.New(
		"base asset must be a 32-byte array in hex format",
	)
	// ErrInvalidQuoteAsset ...
	ErrInvalidQuoteAsset = errors.New(
		"quote asset must be a 32-byte array in hex format",
	)
	// ErrSameAssetPair ...
	ErrSameAssetPair = errors.New(
		"base and quote assets must not be the same",
	)
)

// SideAmounts holds one value per side of a market pair.
type SideAmounts struct {
	BaseAsset  uint64
	QuoteAsset uint64
}

// Fee is the fee schedule of a market. Percentage fees are expressed in
// basis points (1 unit = 10^-4), fixed fees in minor units of the respective
// asset.
type Fee struct {
	FixedFee      SideAmounts
	PercentageFee SideAmounts
}

// Price is the current quote of a market, ie. the amount of quote asset per
// unit of base asset, along with the minimum amount the provider accepts to
// trade.
type Price struct {
	SpotPrice         decimal.Decimal
	MinTradableAmount uint64
}

// Balance is the liquidity a provider holds on both sides of a market.
type Balance struct {
	BaseAmount  uint64
	QuoteAmount uint64
}

// Market is a tradable asset pair on one provider. Price, Fee and Balance
// are optional: they depend on per-market endpoints that may be unavailable,
// and markets missing them rank accordingly.
type Market struct {
	Provider   registry.Provider
	BaseAsset  string
	QuoteAsset string
	Fee        *Fee
	Price      *Price
	Balance    *Balance
}

// Validate checks whether the current market is well-formed.
func (m Market) Validate() error {
	if buf, err := hex.DecodeString(m.BaseAsset); err != nil || len(buf) != 32 {
		return ErrInvalidBaseAsset
	}
	if buf, err := hex.DecodeString(m.QuoteAsset); err != nil || len(buf) != 32 {
		return ErrInvalidQuoteAsset
	}
	if m.BaseAsset == m.QuoteAsset {
		return ErrSameAssetPair
	}
	return nil
}

// IsPriced returns whether the market carries a current price quote. Unpriced
// markets cannot be ranked by price.
func (m Market) IsPriced() bool {
	return m.Price != nil
}

// SpotPrice returns the market's spot price, 0 if the market is unpriced so
// that it is always dominated in rankings.
func (m Market) SpotPrice() decimal.Decimal {
	if m.Price == nil {
		return decimal.Zero
	}
	return m.Price.SpotPrice
}
