package trade

import (
	"context"

	"github.com/tdex-network/tdex-trader/pkg/coinselect"
)

// Wallet is the external collaborator controlling the funds to swap. The
// negotiator never touches key material: it asks the wallet for spendable
// outputs and fresh addresses and hands transactions back for signing.
//
// Addresses returned by NextAddress and NextChangeAddress are expected to be
// confidential and freshly derived on every call, so that payouts of
// different trades cannot be linked together.
//
// Blinders inside the returned outputs must already be in the byte order the
// swap protocol expects. They are forwarded to the counter-party unchanged.
type Wallet interface {
	// SpendableOutputs returns the current set of unspent outputs. It is
	// called at the start of every trade attempt, never cached across them.
	SpendableOutputs(ctx context.Context) ([]coinselect.SpendableOutput, error)
	// NextAddress returns a fresh confidential receiving address.
	NextAddress(ctx context.Context) (string, error)
	// NextChangeAddress returns a fresh confidential change address.
	NextChangeAddress(ctx context.Context) (string, error)
	// SignTransaction signs the wallet's inputs of the given partial
	// transaction in base64 format and returns the signed transaction.
	SignTransaction(ctx context.Context, psetBase64 string) (string, error)
	// Balance returns the confirmed balance of the given asset.
	Balance(ctx context.Context, asset string) (uint64, error)
}
