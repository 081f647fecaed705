package esplora

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-trader/pkg/bufferutil"
	"github.com/vulpemventures/go-elements/transaction"
)

var (
	testAsset = "5ac9f65c0efcc4775e0baec4ec03abdde22473cd3cf33c0419ca290e0751b225"
	testTxid  = strings.Repeat("ab", 32)
	testValue = uint64(100000000)
)

func TestGetUnspents(t *testing.T) {
	addr := "ert1qlg343vpk6q6s6vngzjgwmtp6kor2lmt99sjyv9"
	srv := newFakeEsplora(t, addr)
	defer srv.Close()

	svc, err := NewService(srv.URL, 5*time.Second)
	require.NoError(t, err)

	unspents, err := svc.GetUnspents(context.Background(), addr, nil)
	require.NoError(t, err)
	require.Len(t, unspents, 1)

	unspent := unspents[0]
	assert.Equal(t, testTxid, unspent.TxID)
	assert.Equal(t, uint32(0), unspent.Index)
	require.NotNil(t, unspent.Prevout)
	require.NotNil(t, unspent.Unblinded)
	assert.Equal(t, testAsset, unspent.Asset())
	assert.Equal(t, testValue, unspent.Value())
	assert.Equal(t, strings.Repeat("00", 32), unspent.Unblinded.AssetBlinder)
	assert.Equal(t, strings.Repeat("00", 32), unspent.Unblinded.AmountBlinder)
	assert.Empty(t, unspent.RangeProof)
}

func TestTransactionStatus(t *testing.T) {
	srv := newFakeEsplora(t, "addr")
	defer srv.Close()

	svc, err := NewService(srv.URL, 5*time.Second)
	require.NoError(t, err)

	txHex, err := svc.GetTransactionHex(context.Background(), testTxid)
	require.NoError(t, err)
	assert.NotEmpty(t, txHex)

	confirmed, err := svc.IsTransactionConfirmed(context.Background(), testTxid)
	require.NoError(t, err)
	assert.True(t, confirmed)
}

func TestBroadcastTransaction(t *testing.T) {
	srv := newFakeEsplora(t, "addr")
	defer srv.Close()

	svc, err := NewService(srv.URL, 5*time.Second)
	require.NoError(t, err)

	txid, err := svc.BroadcastTransaction(context.Background(), "0200")
	require.NoError(t, err)
	assert.Equal(t, testTxid, txid)
}

func TestNewServiceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	svc, err := NewService(srv.URL, time.Second)
	require.Error(t, err)
	assert.Nil(t, svc)
}

func newFakeEsplora(t *testing.T, addr string) *httptest.Server {
	t.Helper()

	prevoutTxHex := makeUnconfidentialTxHex(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/blocks/tip/height", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "100")
	})
	mux.HandleFunc(
		fmt.Sprintf("/address/%s/utxo", addr),
		func(w http.ResponseWriter, r *http.Request) {
			utxos := []map[string]interface{}{
				{
					"txid":   testTxid,
					"vout":   0,
					"status": map[string]interface{}{"confirmed": true},
				},
			}
			json.NewEncoder(w).Encode(utxos)
		},
	)
	mux.HandleFunc(
		fmt.Sprintf("/tx/%s/hex", testTxid),
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, prevoutTxHex)
		},
	)
	mux.HandleFunc(
		fmt.Sprintf("/tx/%s/status", testTxid),
		func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"confirmed": true})
		},
	)
	mux.HandleFunc("/tx", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testTxid)
	})

	return httptest.NewServer(mux)
}

func makeUnconfidentialTxHex(t *testing.T) string {
	t.Helper()

	asset, err := bufferutil.AssetHashToBytes(testAsset)
	require.NoError(t, err)
	value, err := bufferutil.ValueToBytes(testValue)
	require.NoError(t, err)

	tx := &transaction.Transaction{Version: 2}
	tx.Inputs = append(tx.Inputs, transaction.NewTxInput(make([]byte, 32), 1))
	tx.Outputs = append(tx.Outputs, transaction.NewTxOutput(asset, value, []byte{}))

	txHex, err := tx.ToHex()
	require.NoError(t, err)
	return txHex
}
