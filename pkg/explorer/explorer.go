// Package explorer defines the abstraction over a Liquid chain explorer used
// to discover and reveal the outputs spendable by a wallet.
package explorer

import (
	"context"

	"github.com/tdex-network/tdex-trader/pkg/coinselect"
)

// Service is the interface to be implemented by any explorer of the Liquid
// chain. Confidential outputs are unblinded with the given blinding keys, so
// that the returned unspents carry the revealed asset, amount and blinders.
type Service interface {
	GetUnspents(
		ctx context.Context, addr string, blindingKeys [][]byte,
	) ([]coinselect.SpendableOutput, error)
	GetTransactionHex(ctx context.Context, txid string) (string, error)
	IsTransactionConfirmed(ctx context.Context, txid string) (bool, error)
	BroadcastTransaction(ctx context.Context, txHex string) (string, error)
}
