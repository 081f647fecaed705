package esplora

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/tdex-network/tdex-trader/pkg/bufferutil"
	"github.com/tdex-network/tdex-trader/pkg/coinselect"
	"github.com/vulpemventures/go-elements/confidential"
	"github.com/vulpemventures/go-elements/elementsutil"
	"github.com/vulpemventures/go-elements/transaction"
	"golang.org/x/sync/errgroup"
)

// ErrUnableToUnblind is returned when none of the given blinding keys can
// reveal the secrets of a confidential output.
var ErrUnableToUnblind = errors.New("unable to unblind output with the provided keys")

const maxConcurrentRequests = 4

type utxoDTO struct {
	Txid   string `json:"txid"`
	Vout   uint32 `json:"vout"`
	Status struct {
		Confirmed bool `json:"confirmed"`
	} `json:"status"`
}

func (e *esplora) GetUnspents(
	ctx context.Context, addr string, blindingKeys [][]byte,
) ([]coinselect.SpendableOutput, error) {
	body, err := e.get(ctx, fmt.Sprintf("/address/%s/utxo", addr))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unspents: %w", err)
	}

	var utxos []utxoDTO
	if err := json.Unmarshal([]byte(body), &utxos); err != nil {
		return nil, fmt.Errorf("failed to parse unspents: %w", err)
	}

	unspents := make([]coinselect.SpendableOutput, len(utxos))
	var lock sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRequests)
	for i := range utxos {
		i := i
		g.Go(func() error {
			unspent, err := e.getUnspentDetails(gctx, utxos[i], blindingKeys)
			if err != nil {
				return err
			}
			lock.Lock()
			defer lock.Unlock()
			unspents[i] = *unspent
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return unspents, nil
}

func (e *esplora) getUnspentDetails(
	ctx context.Context, utxo utxoDTO, blindingKeys [][]byte,
) (*coinselect.SpendableOutput, error) {
	prevoutTxHex, err := e.GetTransactionHex(ctx, utxo.Txid)
	if err != nil {
		return nil, err
	}
	prevoutTx, err := transaction.NewTxFromHex(prevoutTxHex)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prevout tx: %w", err)
	}
	if int(utxo.Vout) >= len(prevoutTx.Outputs) {
		return nil, fmt.Errorf(
			"prevout index %d out of range for tx %s", utxo.Vout, utxo.Txid,
		)
	}
	prevout := prevoutTx.Outputs[utxo.Vout]

	unspent := &coinselect.SpendableOutput{
		TxID:    utxo.Txid,
		Index:   utxo.Vout,
		Prevout: prevout,
	}

	if !prevout.IsConfidential() {
		unspent.Unblinded = &coinselect.UnblindedData{
			Asset:         bufferutil.AssetHashFromBytes(prevout.Asset),
			Value:         bufferutil.ValueFromBytes(prevout.Value),
			AssetBlinder:  zeroBlinder(),
			AmountBlinder: zeroBlinder(),
		}
		return unspent, nil
	}

	unspent.RangeProof = prevout.RangeProof
	unblinded, err := unblindOutput(prevout, blindingKeys)
	if err != nil {
		return nil, err
	}
	unspent.Unblinded = unblinded

	return unspent, nil
}

func unblindOutput(
	prevout *transaction.TxOutput, blindingKeys [][]byte,
) (*coinselect.UnblindedData, error) {
	for _, key := range blindingKeys {
		// A wrong key makes the rangeproof rewind fail, in which case the
		// next one is tried.
		revealed, err := confidential.UnblindOutputWithKey(prevout, key)
		if err != nil {
			continue
		}

		return &coinselect.UnblindedData{
			Asset:         hex.EncodeToString(elementsutil.ReverseBytes(revealed.Asset)),
			Value:         revealed.Value,
			AssetBlinder:  bufferutil.BlinderFromBytes(revealed.AssetBlindingFactor),
			AmountBlinder: bufferutil.BlinderFromBytes(revealed.ValueBlindingFactor),
		}, nil
	}

	return nil, ErrUnableToUnblind
}

func zeroBlinder() string {
	return bufferutil.BlinderFromBytes(make([]byte, 32))
}
