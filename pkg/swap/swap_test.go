package swap

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/go-elements/psetv2"
)

var (
	lbtc = strings.Repeat("aa", 32)
	usdt = strings.Repeat("bb", 32)
)

// makeSwapPset builds the proposer's side of a swap transaction: inputs
// funding the sent asset, one payout output of the received asset and an
// optional change output of the sent asset.
func makeSwapPset(
	t *testing.T, inAmounts []uint64, payout, change uint64,
) (string, []UnblindedInput) {
	t.Helper()

	ins := make([]psetv2.InputArgs, 0, len(inAmounts))
	unblindedIns := make([]UnblindedInput, 0, len(inAmounts))
	for i, amount := range inAmounts {
		ins = append(ins, psetv2.InputArgs{
			Txid:    strings.Repeat("dd", 32),
			TxIndex: uint32(i),
		})
		unblindedIns = append(unblindedIns, UnblindedInput{
			Index:         uint32(i),
			Asset:         lbtc,
			Amount:        amount,
			AssetBlinder:  strings.Repeat("00", 32),
			AmountBlinder: strings.Repeat("00", 32),
		})
	}

	outs := []psetv2.OutputArgs{{Asset: usdt, Amount: payout}}
	if change > 0 {
		outs = append(outs, psetv2.OutputArgs{Asset: lbtc, Amount: change})
	}

	ptx, err := psetv2.New(ins, outs, nil)
	require.NoError(t, err)
	psetBase64, err := ptx.ToBase64()
	require.NoError(t, err)
	return psetBase64, unblindedIns
}

func TestRequest(t *testing.T) {
	t.Run("fee charged on the received asset", func(t *testing.T) {
		// Inputs fund exactly the sent amount, the payout is the received
		// amount minus the fee.
		psetBase64, unblindedIns := makeSwapPset(
			t, []uint64{100000000}, 50000000000-25000, 0,
		)

		request, err := Request(RequestOpts{
			AssetToSend:     lbtc,
			AmountToSend:    100000000,
			AssetToReceive:  usdt,
			AmountToReceive: 50000000000,
			FeeAsset:        usdt,
			FeeAmount:       25000,
			Transaction:     psetBase64,
			UnblindedInputs: unblindedIns,
		})
		require.NoError(t, err)
		require.NotNil(t, request)
		assert.NotEmpty(t, request.ID)
		assert.Equal(t, uint64(100000000), request.AmountP)
		assert.Equal(t, uint64(50000000000), request.AmountR)
	})

	t.Run("fee funded on top of the sent asset", func(t *testing.T) {
		// Inputs overshoot the sent amount plus fee, the rest is change.
		psetBase64, unblindedIns := makeSwapPset(
			t, []uint64{100000000, 60000000}, 50000000000, 59975000,
		)

		request, err := Request(RequestOpts{
			AssetToSend:     lbtc,
			AmountToSend:    100000000,
			AssetToReceive:  usdt,
			AmountToReceive: 50000000000,
			FeeAsset:        lbtc,
			FeeAmount:       25000,
			Transaction:     psetBase64,
			UnblindedInputs: unblindedIns,
		})
		require.NoError(t, err)
		require.NotNil(t, request)
	})

	t.Run("amounts not matching the terms", func(t *testing.T) {
		psetBase64, unblindedIns := makeSwapPset(
			t, []uint64{100000000}, 50000000000, 0,
		)

		request, err := Request(RequestOpts{
			AssetToSend:     lbtc,
			AmountToSend:    90000000,
			AssetToReceive:  usdt,
			AmountToReceive: 50000000000,
			FeeAsset:        usdt,
			FeeAmount:       0,
			Transaction:     psetBase64,
			UnblindedInputs: unblindedIns,
		})
		require.Error(t, err)
		assert.Nil(t, request)
	})

	t.Run("unblinded index out of range", func(t *testing.T) {
		psetBase64, unblindedIns := makeSwapPset(
			t, []uint64{100000000}, 50000000000, 0,
		)
		unblindedIns[0].Index = 7

		request, err := Request(RequestOpts{
			AssetToSend:     lbtc,
			AmountToSend:    100000000,
			AssetToReceive:  usdt,
			AmountToReceive: 50000000000,
			FeeAsset:        usdt,
			FeeAmount:       0,
			Transaction:     psetBase64,
			UnblindedInputs: unblindedIns,
		})
		require.Error(t, err)
		assert.Nil(t, request)
	})

	t.Run("malformed transaction", func(t *testing.T) {
		request, err := Request(RequestOpts{
			AssetToSend:     lbtc,
			AmountToSend:    100000000,
			AssetToReceive:  usdt,
			AmountToReceive: 50000000000,
			Transaction:     "not a pset",
		})
		require.Error(t, err)
		assert.Nil(t, request)
	})
}

func TestRequestKeepsGivenID(t *testing.T) {
	psetBase64, unblindedIns := makeSwapPset(
		t, []uint64{100000000}, 50000000000, 0,
	)

	request, err := Request(RequestOpts{
		ID:              "swap123",
		AssetToSend:     lbtc,
		AmountToSend:    100000000,
		AssetToReceive:  usdt,
		AmountToReceive: 50000000000,
		FeeAsset:        usdt,
		FeeAmount:       0,
		Transaction:     psetBase64,
		UnblindedInputs: unblindedIns,
	})
	require.NoError(t, err)
	assert.Equal(t, "swap123", request.ID)
}

func TestComplete(t *testing.T) {
	psetBase64, _ := makeSwapPset(t, []uint64{100000000}, 50000000000, 0)
	accept := &SwapAccept{ID: "accept1", Transaction: psetBase64}

	complete, err := Complete(CompleteOpts{
		Accept:      accept,
		Transaction: psetBase64,
	})
	require.NoError(t, err)
	require.NotNil(t, complete)
	assert.Equal(t, "accept1", complete.AcceptID)
	assert.NotEmpty(t, complete.ID)

	t.Run("null accept", func(t *testing.T) {
		complete, err := Complete(CompleteOpts{Transaction: psetBase64})
		require.Error(t, err)
		assert.Nil(t, complete)
	})

	t.Run("malformed transaction", func(t *testing.T) {
		complete, err := Complete(CompleteOpts{
			Accept:      accept,
			Transaction: "not a pset",
		})
		require.Error(t, err)
		assert.Nil(t, complete)
	})
}

func TestMonetaryFieldsAreDecimalStrings(t *testing.T) {
	request := SwapRequest{
		ID:      "swap123",
		AssetP:  lbtc,
		AmountP: 100000000,
		AssetR:  usdt,
		AmountR: 50000000000,
		UnblindedInputs: []UnblindedInput{
			{Index: 0, Asset: lbtc, Amount: 100000000},
		},
	}

	buf, err := json.Marshal(request)
	require.NoError(t, err)

	raw := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(buf, &raw))
	assert.Equal(t, `"100000000"`, string(raw["amountP"]))
	assert.Equal(t, `"50000000000"`, string(raw["amountR"]))
}
