package trade

import (
	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-trader/pkg/mathutil"
	trademarket "github.com/tdex-network/tdex-trader/pkg/trade/market"
	tradetype "github.com/tdex-network/tdex-trader/pkg/trade/type"
)

// BalancePolicy states how a market's available liquidity takes part in the
// best-market selection.
type BalancePolicy int

const (
	// BalancePreferSufficient restricts the ranking to markets with enough
	// balance for the pair, falling back to every pair-matching market when
	// none qualifies. A market is never turned untradable by this policy.
	BalancePreferSufficient BalancePolicy = iota
	// BalanceRequireSufficient excludes markets with insufficient or unknown
	// balance outright.
	BalanceRequireSufficient
	// BalanceIgnore ranks on price and fees only.
	BalanceIgnore
)

// BestMarketOpts is the struct given to BestMarket.
type BestMarketOpts struct {
	// PreferredProvider restricts the selection to the markets of the named
	// provider when set.
	PreferredProvider string
	BalancePolicy     BalancePolicy
}

// TradeTypeForMarket returns the direction of trading the pair on the given
// market: SELL when the client is disposing of the market's base asset, BUY
// otherwise.
func TradeTypeForMarket(
	market trademarket.Market, pair trademarket.Pair,
) tradetype.TradeType {
	if market.BaseAsset == pair.From.Asset {
		return tradetype.Sell
	}
	return tradetype.Buy
}

// BestMarket selects the market offering the best execution price for the
// given pair. SELL-direction candidates rank by lowest spot price,
// BUY-direction ones by highest; candidates sharing the winning price are
// tie-broken by lowest total estimated fee. It returns nil when no market
// trades the pair, which callers must treat as "pair not tradable" rather
// than an error.
func BestMarket(
	markets []trademarket.Market, pair trademarket.Pair, opts BestMarketOpts,
) *trademarket.Market {
	candidates := make([]trademarket.Market, 0, len(markets))
	for _, m := range markets {
		if opts.PreferredProvider != "" && m.Provider.Name != opts.PreferredProvider {
			continue
		}
		if !m.Matches(pair) {
			continue
		}
		candidates = append(candidates, m)
	}

	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) == 1 {
		return &candidates[0]
	}

	candidates = applyBalancePolicy(candidates, pair, opts.BalancePolicy)
	if len(candidates) == 0 {
		return nil
	}

	// An unpriced market can never win a price ranking, whatever the trade
	// direction. It is returned only when no candidate carries a price.
	priced := make([]trademarket.Market, 0, len(candidates))
	for _, m := range candidates {
		if m.IsPriced() {
			priced = append(priced, m)
		}
	}
	if len(priced) == 0 {
		return &candidates[0]
	}
	candidates = priced

	best := candidates[0]
	for _, curr := range candidates[1:] {
		if TradeTypeForMarket(curr, pair).IsSell() {
			// Disposing of the base asset: the lowest spot price is the
			// cheapest execution.
			if curr.SpotPrice().LessThan(best.SpotPrice()) {
				best = curr
			}
		} else {
			// Acquiring the base asset: the highest spot price gives the
			// best rate.
			if curr.SpotPrice().GreaterThan(best.SpotPrice()) {
				best = curr
			}
		}
	}

	dups := make([]trademarket.Market, 0, len(candidates))
	for _, m := range candidates {
		if m.SpotPrice().Equal(best.SpotPrice()) {
			dups = append(dups, m)
		}
	}
	if len(dups) <= 1 {
		return &best
	}

	winner := dups[0]
	winnerFees := totalMarketFees(winner, pair)
	for _, curr := range dups[1:] {
		currFees := totalMarketFees(curr, pair)
		// A market missing fee data loses every tie-break it takes part in.
		if winnerFees == nil {
			winner, winnerFees = curr, currFees
			continue
		}
		if currFees == nil {
			continue
		}
		if currFees.LessThan(*winnerFees) {
			winner, winnerFees = curr, currFees
		}
	}
	return &winner
}

func applyBalancePolicy(
	candidates []trademarket.Market, pair trademarket.Pair, policy BalancePolicy,
) []trademarket.Market {
	if policy == BalanceIgnore {
		return candidates
	}

	funded := make([]trademarket.Market, 0, len(candidates))
	for _, m := range candidates {
		if hasEnoughBalance(m, pair) {
			funded = append(funded, m)
		}
	}

	if policy == BalanceRequireSufficient {
		return funded
	}
	if len(funded) == 0 {
		return candidates
	}
	return funded
}

// hasEnoughBalance returns whether the provider holds enough liquidity on
// the side of the market the client wants to acquire.
func hasEnoughBalance(market trademarket.Market, pair trademarket.Pair) bool {
	if market.Balance == nil {
		return false
	}
	if TradeTypeForMarket(market, pair).IsSell() {
		return market.Balance.QuoteAmount >= pair.Dest.Amount
	}
	return market.Balance.BaseAmount >= pair.Dest.Amount
}

// totalMarketFees estimates the total fee of trading the pair on the market:
// the fixed components of both sides plus the percentage components, in
// basis points, applied to each side's amount. It returns nil when the
// market does not expose its fee schedule.
func totalMarketFees(
	market trademarket.Market, pair trademarket.Pair,
) *decimal.Decimal {
	if market.Fee == nil {
		return nil
	}

	baseAmount, quoteAmount := pair.From.Amount, pair.Dest.Amount
	if market.BaseAsset == pair.Dest.Asset {
		baseAmount, quoteAmount = quoteAmount, baseAmount
	}

	fixedFees := mathutil.Add(
		market.Fee.FixedFee.BaseAsset, market.Fee.FixedFee.QuoteAsset,
	)
	basePercentage := mathutil.Mul(
		baseAmount, market.Fee.PercentageFee.BaseAsset,
	).Div(mathutil.FromUint(mathutil.TenThousands))
	quotePercentage := mathutil.Mul(
		quoteAmount, market.Fee.PercentageFee.QuoteAsset,
	).Div(mathutil.FromUint(mathutil.TenThousands))

	total := fixedFees.Add(basePercentage).Add(quotePercentage)
	return &total
}
