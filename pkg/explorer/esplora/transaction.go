package esplora

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type txStatus struct {
	Confirmed   bool   `json:"confirmed"`
	BlockHash   string `json:"block_hash"`
	BlockHeight int    `json:"block_height"`
}

func (e *esplora) GetTransactionHex(
	ctx context.Context, txid string,
) (string, error) {
	hex, err := e.get(ctx, fmt.Sprintf("/tx/%s/hex", txid))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(hex), nil
}

func (e *esplora) IsTransactionConfirmed(
	ctx context.Context, txid string,
) (bool, error) {
	body, err := e.get(ctx, fmt.Sprintf("/tx/%s/status", txid))
	if err != nil {
		return false, err
	}

	status := txStatus{}
	if err := json.Unmarshal([]byte(body), &status); err != nil {
		return false, err
	}
	return status.Confirmed, nil
}

func (e *esplora) BroadcastTransaction(
	ctx context.Context, txHex string,
) (string, error) {
	txid, err := e.post(ctx, "/tx", "text/plain", txHex)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(txid), nil
}
