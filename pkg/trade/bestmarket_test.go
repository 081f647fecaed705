package trade

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-trader/pkg/registry"
	trademarket "github.com/tdex-network/tdex-trader/pkg/trade/market"
)

var (
	lbtc  = strings.Repeat("aa", 32)
	usdt  = strings.Repeat("bb", 32)
	other = strings.Repeat("cc", 32)

	sellPair = trademarket.Pair{
		From: trademarket.PairSide{Asset: lbtc, Amount: 100000000},
		Dest: trademarket.PairSide{Asset: usdt, Amount: 50000000000},
	}
	buyPair = trademarket.Pair{
		From: trademarket.PairSide{Asset: usdt, Amount: 50000000000},
		Dest: trademarket.PairSide{Asset: lbtc, Amount: 100000000},
	}
)

func makeMarket(provider string, price float64) trademarket.Market {
	m := trademarket.Market{
		Provider: registry.Provider{
			Name:     provider,
			Endpoint: "http://" + provider + ".onion",
		},
		BaseAsset:  lbtc,
		QuoteAsset: usdt,
	}
	if price > 0 {
		m.Price = &trademarket.Price{SpotPrice: decimal.NewFromFloat(price)}
	}
	return m
}

func TestBestMarketSellPrefersLowestPrice(t *testing.T) {
	m1 := makeMarket("p1", 100)
	m2 := makeMarket("p2", 90)

	best := BestMarket(
		[]trademarket.Market{m1, m2}, sellPair,
		BestMarketOpts{BalancePolicy: BalanceIgnore},
	)
	require.NotNil(t, best)
	assert.Equal(t, "p2", best.Provider.Name)
}

func TestBestMarketBuyPrefersHighestPrice(t *testing.T) {
	m1 := makeMarket("p1", 100)
	m2 := makeMarket("p2", 90)

	best := BestMarket(
		[]trademarket.Market{m1, m2}, buyPair,
		BestMarketOpts{BalancePolicy: BalanceIgnore},
	)
	require.NotNil(t, best)
	assert.Equal(t, "p1", best.Provider.Name)
}

func TestBestMarketSkipsForeignPairs(t *testing.T) {
	m1 := makeMarket("p1", 100)
	m2 := makeMarket("p2", 90)
	m2.QuoteAsset = other

	best := BestMarket(
		[]trademarket.Market{m1, m2}, sellPair,
		BestMarketOpts{BalancePolicy: BalanceIgnore},
	)
	require.NotNil(t, best)
	assert.Equal(t, "p1", best.Provider.Name)

	best = BestMarket(
		[]trademarket.Market{m2}, sellPair,
		BestMarketOpts{BalancePolicy: BalanceIgnore},
	)
	assert.Nil(t, best)
}

func TestBestMarketMatchesReversedPair(t *testing.T) {
	// The pair trades base and quote in reverse order wrt the market.
	m := makeMarket("p1", 100)
	m.BaseAsset, m.QuoteAsset = usdt, lbtc

	best := BestMarket(
		[]trademarket.Market{m}, sellPair,
		BestMarketOpts{BalancePolicy: BalanceIgnore},
	)
	require.NotNil(t, best)
	assert.Equal(t, "p1", best.Provider.Name)
}

func TestBestMarketUnpricedIsDominated(t *testing.T) {
	priced := makeMarket("priced", 100)
	unpriced := makeMarket("unpriced", 0)

	// Even on SELL direction, where the lowest price wins, the unpriced
	// market must not win with its zero price.
	best := BestMarket(
		[]trademarket.Market{unpriced, priced}, sellPair,
		BestMarketOpts{BalancePolicy: BalanceIgnore},
	)
	require.NotNil(t, best)
	assert.Equal(t, "priced", best.Provider.Name)
}

func TestBestMarketFeeTieBreak(t *testing.T) {
	m1 := makeMarket("expensive", 100)
	m1.Fee = &trademarket.Fee{
		FixedFee: trademarket.SideAmounts{BaseAsset: 600, QuoteAsset: 400},
	}
	m2 := makeMarket("cheap", 100)
	m2.Fee = &trademarket.Fee{
		FixedFee: trademarket.SideAmounts{BaseAsset: 300, QuoteAsset: 200},
	}

	best := BestMarket(
		[]trademarket.Market{m1, m2}, sellPair,
		BestMarketOpts{BalancePolicy: BalanceIgnore},
	)
	require.NotNil(t, best)
	assert.Equal(t, "cheap", best.Provider.Name)
}

func TestBestMarketFeeTieBreakMissingFeeLoses(t *testing.T) {
	m1 := makeMarket("nofee", 100)
	m2 := makeMarket("withfee", 100)
	m2.Fee = &trademarket.Fee{
		FixedFee: trademarket.SideAmounts{BaseAsset: 1000, QuoteAsset: 1000},
	}

	best := BestMarket(
		[]trademarket.Market{m1, m2}, sellPair,
		BestMarketOpts{BalancePolicy: BalanceIgnore},
	)
	require.NotNil(t, best)
	assert.Equal(t, "withfee", best.Provider.Name)
}

func TestBestMarketIsDeterministic(t *testing.T) {
	markets := []trademarket.Market{
		makeMarket("p1", 100),
		makeMarket("p2", 100),
		makeMarket("p3", 100),
	}

	first := BestMarket(markets, sellPair, BestMarketOpts{BalancePolicy: BalanceIgnore})
	require.NotNil(t, first)
	for i := 0; i < 10; i++ {
		again := BestMarket(markets, sellPair, BestMarketOpts{BalancePolicy: BalanceIgnore})
		require.NotNil(t, again)
		assert.Equal(t, first.Provider.Name, again.Provider.Name)
	}
}

func TestBestMarketPreferredProvider(t *testing.T) {
	m1 := makeMarket("p1", 90)
	m2 := makeMarket("p2", 100)

	best := BestMarket(
		[]trademarket.Market{m1, m2}, sellPair,
		BestMarketOpts{PreferredProvider: "p2", BalancePolicy: BalanceIgnore},
	)
	require.NotNil(t, best)
	assert.Equal(t, "p2", best.Provider.Name)
}

func TestBestMarketBalancePolicies(t *testing.T) {
	funded := makeMarket("funded", 100)
	funded.Balance = &trademarket.Balance{
		BaseAmount:  200000000,
		QuoteAmount: 100000000000,
	}
	poor := makeMarket("poor", 90)
	poor.Balance = &trademarket.Balance{BaseAmount: 1000, QuoteAmount: 1000}
	unknown := makeMarket("unknown", 80)

	t.Run("prefer sufficient keeps funded markets", func(t *testing.T) {
		best := BestMarket(
			[]trademarket.Market{poor, funded, unknown}, sellPair,
			BestMarketOpts{BalancePolicy: BalancePreferSufficient},
		)
		require.NotNil(t, best)
		assert.Equal(t, "funded", best.Provider.Name)
	})

	t.Run("prefer sufficient falls back when none funded", func(t *testing.T) {
		best := BestMarket(
			[]trademarket.Market{poor, unknown}, sellPair,
			BestMarketOpts{BalancePolicy: BalancePreferSufficient},
		)
		require.NotNil(t, best)
		assert.Equal(t, "unknown", best.Provider.Name)
	})

	t.Run("require sufficient excludes unfunded markets", func(t *testing.T) {
		best := BestMarket(
			[]trademarket.Market{poor, unknown}, sellPair,
			BestMarketOpts{BalancePolicy: BalanceRequireSufficient},
		)
		assert.Nil(t, best)
	})

	t.Run("ignore ranks on price only", func(t *testing.T) {
		best := BestMarket(
			[]trademarket.Market{poor, funded, unknown}, sellPair,
			BestMarketOpts{BalancePolicy: BalanceIgnore},
		)
		require.NotNil(t, best)
		assert.Equal(t, "unknown", best.Provider.Name)
	})
}
