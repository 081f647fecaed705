// Package wallet provides a single-key confidential wallet backed by an
// explorer. It is meant for programmatic trading and testing purposes, not
// for storing funds: it manages one P2WPKH script and one blinding key.
package wallet

import (
	"context"
	"encoding/hex"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/tdex-network/tdex-trader/pkg/coinselect"
	"github.com/tdex-network/tdex-trader/pkg/explorer"
	"github.com/vulpemventures/go-elements/network"
	"github.com/vulpemventures/go-elements/payment"
)

var (
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network must not be null")
	// ErrNullExplorer ...
	ErrNullExplorer = errors.New("explorer must not be null")
	// ErrInvalidSigningKey ...
	ErrInvalidSigningKey = errors.New("signing key must be a 32-byte hex string")
	// ErrInvalidBlindingKey ...
	ErrInvalidBlindingKey = errors.New("blinding key must be a 32-byte hex string")
)

// NewWalletOpts is the struct given to NewWallet.
type NewWalletOpts struct {
	// SigningKeyHex and BlindingKeyHex are the hex encodings of the wallet's
	// private keys. Leave both empty to generate a fresh random wallet.
	SigningKeyHex  string
	BlindingKeyHex string
	Network        *network.Network
	Explorer       explorer.Service
}

func (o NewWalletOpts) validate() error {
	if o.Network == nil {
		return ErrNullNetwork
	}
	if o.Explorer == nil {
		return ErrNullExplorer
	}
	if len(o.SigningKeyHex) > 0 {
		if buf, err := hex.DecodeString(o.SigningKeyHex); err != nil || len(buf) != 32 {
			return ErrInvalidSigningKey
		}
	}
	if len(o.BlindingKeyHex) > 0 {
		if buf, err := hex.DecodeString(o.BlindingKeyHex); err != nil || len(buf) != 32 {
			return ErrInvalidBlindingKey
		}
	}
	return nil
}

// Wallet is a single-key confidential wallet implementing the collaborator
// interface expected by the trade package.
type Wallet struct {
	signingKey  *btcec.PrivateKey
	blindingKey *btcec.PrivateKey
	net         *network.Network
	explorer    explorer.Service
}

// NewWallet returns a wallet from the given options, generating random keys
// for those not provided.
func NewWallet(opts NewWalletOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	signingKey, err := keyFromHexOrRandom(opts.SigningKeyHex)
	if err != nil {
		return nil, err
	}
	blindingKey, err := keyFromHexOrRandom(opts.BlindingKeyHex)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		signingKey:  signingKey,
		blindingKey: blindingKey,
		net:         opts.Network,
		explorer:    opts.Explorer,
	}, nil
}

// Address returns the confidential P2WPKH address of the wallet.
func (w *Wallet) Address() string {
	addr, _ := w.payment().ConfidentialWitnessPubKeyHash()
	return addr
}

// BlindingKey returns the serialized private blinding key of the wallet.
func (w *Wallet) BlindingKey() []byte {
	return w.blindingKey.Serialize()
}

// NextAddress returns the wallet's only address. Being a single-key wallet,
// addresses are reused across trades.
func (w *Wallet) NextAddress(_ context.Context) (string, error) {
	return w.Address(), nil
}

// NextChangeAddress returns the wallet's only address.
func (w *Wallet) NextChangeAddress(_ context.Context) (string, error) {
	return w.Address(), nil
}

// SpendableOutputs fetches the wallet unspents from the explorer, revealed
// with the wallet's blinding key.
func (w *Wallet) SpendableOutputs(
	ctx context.Context,
) ([]coinselect.SpendableOutput, error) {
	return w.explorer.GetUnspents(
		ctx, w.Address(), [][]byte{w.blindingKey.Serialize()},
	)
}

// Balance returns the wallet's total unspent amount for the given asset.
func (w *Wallet) Balance(ctx context.Context, asset string) (uint64, error) {
	unspents, err := w.SpendableOutputs(ctx)
	if err != nil {
		return 0, err
	}

	balance := uint64(0)
	for _, u := range unspents {
		if u.Asset() == asset {
			balance += u.Value()
		}
	}
	return balance, nil
}

func (w *Wallet) payment() *payment.Payment {
	return payment.FromPublicKey(
		w.signingKey.PubKey(), w.net, w.blindingKey.PubKey(),
	)
}

// scripts returns the signing script used for sighash computation and the
// witness program appearing in the wallet's outputs.
func (w *Wallet) scripts() (signingScript, outputScript []byte) {
	p2wpkh := w.payment()
	return p2wpkh.Script, p2wpkh.WitnessScript
}

func keyFromHexOrRandom(keyHex string) (*btcec.PrivateKey, error) {
	if len(keyHex) <= 0 {
		return btcec.NewPrivateKey()
	}
	buf, _ := hex.DecodeString(keyHex)
	key, _ := btcec.PrivKeyFromBytes(buf)
	return key, nil
}
