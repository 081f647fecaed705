package trade

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tradeclient "github.com/tdex-network/tdex-trader/pkg/trade/client"
)

func newPreviewServer(t *testing.T, preview map[string]interface{}) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v2/trade/preview", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"previews": []map[string]interface{}{preview},
		})
	})
	return httptest.NewServer(mux)
}

func TestPreviewPairFromSide(t *testing.T) {
	srv := newPreviewServer(t, map[string]interface{}{
		"amount":    "50000000000",
		"asset":     usdt,
		"feeAmount": "25000",
		"feeAsset":  usdt,
	})
	defer srv.Close()

	tr, err := NewTrade(NewTradeOpts{Wallet: &fakeWallet{}})
	require.NoError(t, err)

	pair, preview, err := tr.PreviewPair(context.Background(), PreviewPairOpts{
		Market: testMarket(srv.URL),
		Pair:   sellPair,
		Side:   SideFrom,
	})
	require.NoError(t, err)
	require.NotNil(t, pair)
	require.NotNil(t, preview)

	// The received amount is the quote net of the trading fee.
	assert.Equal(t, uint64(50000000000-25000), pair.Dest.Amount)
	assert.Equal(t, sellPair.From.Amount, pair.From.Amount)
	assert.Equal(t, uint64(50000000000), preview.Amount)
	assert.Equal(t, uint64(25000), preview.FeeAmount)
}

func TestPreviewPairDestSide(t *testing.T) {
	srv := newPreviewServer(t, map[string]interface{}{
		"amount":    "100000000",
		"asset":     lbtc,
		"feeAmount": "1000",
		"feeAsset":  lbtc,
	})
	defer srv.Close()

	tr, err := NewTrade(NewTradeOpts{Wallet: &fakeWallet{}})
	require.NoError(t, err)

	pair, _, err := tr.PreviewPair(context.Background(), PreviewPairOpts{
		Market: testMarket(srv.URL),
		Pair:   sellPair,
		Side:   SideDest,
	})
	require.NoError(t, err)
	require.NotNil(t, pair)

	// Acquiring a wanted amount requires funding the quote plus the fee.
	assert.Equal(t, uint64(100000000+1000), pair.From.Amount)
	assert.Equal(t, sellPair.Dest.Amount, pair.Dest.Amount)
}

func TestPreviewPairAmountTooLarge(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/trade/preview", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    2,
			"message": "amount is bigger than max tradable amount",
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tr, err := NewTrade(NewTradeOpts{Wallet: &fakeWallet{}})
	require.NoError(t, err)

	pair, preview, err := tr.PreviewPair(context.Background(), PreviewPairOpts{
		Market: testMarket(srv.URL),
		Pair:   sellPair,
		Side:   SideFrom,
	})
	require.ErrorIs(t, err, tradeclient.ErrAmountTooLarge)
	assert.Nil(t, pair)
	assert.Nil(t, preview)
}

func TestPreviewPairUnreachableProvider(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	tr, err := NewTrade(NewTradeOpts{Wallet: &fakeWallet{}})
	require.NoError(t, err)

	pair, preview, err := tr.PreviewPair(context.Background(), PreviewPairOpts{
		Market: testMarket(srv.URL),
		Pair:   sellPair,
		Side:   SideFrom,
	})
	require.ErrorIs(t, err, ErrPreviewUnavailable)
	assert.Nil(t, pair)
	assert.Nil(t, preview)
}

func TestPreviewPairMissingAmount(t *testing.T) {
	tr, err := NewTrade(NewTradeOpts{Wallet: &fakeWallet{}})
	require.NoError(t, err)

	pair := sellPair
	pair.From.Amount = 0

	_, _, err = tr.PreviewPair(context.Background(), PreviewPairOpts{
		Market: testMarket("http://localhost:9945"),
		Pair:   pair,
		Side:   SideFrom,
	})
	require.ErrorIs(t, err, ErrMissingAmount)
}
