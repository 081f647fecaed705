package trade

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-trader/pkg/registry"
)

func newDiscoveryServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v2/markets", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"markets": []map[string]interface{}{
				{
					"market": map[string]interface{}{
						"baseAsset":  lbtc,
						"quoteAsset": usdt,
					},
					"fee": map[string]interface{}{
						"fixedFee": map[string]interface{}{
							"baseAsset":  "600",
							"quoteAsset": "300",
						},
						"percentageFee": map[string]interface{}{
							"baseAsset":  "25",
							"quoteAsset": "25",
						},
					},
				},
			},
		})
	})
	mux.HandleFunc("/v2/market/price", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"spotPrice":         100.5,
			"minTradableAmount": "1000",
		})
	})
	mux.HandleFunc("/v2/market/balance", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"balance": map[string]interface{}{
				"baseAmount":  "200000000",
				"quoteAmount": "100000000000",
			},
		})
	})
	return httptest.NewServer(mux)
}

func TestDiscoverMarkets(t *testing.T) {
	srv := newDiscoveryServer(t)
	defer srv.Close()

	tr, err := NewTrade(NewTradeOpts{Wallet: &fakeWallet{}})
	require.NoError(t, err)

	providers := []registry.Provider{{Name: "good", Endpoint: srv.URL}}

	markets, err := tr.DiscoverMarkets(
		context.Background(), providers, DiscoverOpts{WithBalances: true},
	)
	require.NoError(t, err)
	require.Len(t, markets, 1)

	market := markets[0]
	assert.Equal(t, "good", market.Provider.Name)
	assert.Equal(t, lbtc, market.BaseAsset)
	assert.Equal(t, usdt, market.QuoteAsset)

	require.NotNil(t, market.Fee)
	assert.Equal(t, uint64(600), market.Fee.FixedFee.BaseAsset)
	assert.Equal(t, uint64(25), market.Fee.PercentageFee.QuoteAsset)

	require.True(t, market.IsPriced())
	assert.Equal(t, "100.5", market.SpotPrice().String())
	assert.Equal(t, uint64(1000), market.Price.MinTradableAmount)

	require.NotNil(t, market.Balance)
	assert.Equal(t, uint64(100000000000), market.Balance.QuoteAmount)
}

func TestDiscoverMarketsIsolatesFailingProviders(t *testing.T) {
	goodSrv := newDiscoveryServer(t)
	defer goodSrv.Close()
	badSrv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	))
	defer badSrv.Close()

	tr, err := NewTrade(NewTradeOpts{Wallet: &fakeWallet{}})
	require.NoError(t, err)

	providers := []registry.Provider{
		{Name: "bad", Endpoint: badSrv.URL},
		{Name: "good", Endpoint: goodSrv.URL},
		{Name: "unreachable", Endpoint: "http://localhost:1"},
	}

	markets, err := tr.DiscoverMarkets(context.Background(), providers, DiscoverOpts{})
	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Equal(t, "good", markets[0].Provider.Name)
}

func TestDiscoverMarketsNoneFound(t *testing.T) {
	badSrv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	))
	defer badSrv.Close()

	tr, err := NewTrade(NewTradeOpts{Wallet: &fakeWallet{}})
	require.NoError(t, err)

	markets, err := tr.DiscoverMarkets(
		context.Background(),
		[]registry.Provider{{Name: "bad", Endpoint: badSrv.URL}},
		DiscoverOpts{},
	)
	require.ErrorIs(t, err, ErrNoMarketsFound)
	assert.Nil(t, markets)
}
