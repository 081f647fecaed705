package wallet

import (
	"bytes"
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/txscript"
	"github.com/vulpemventures/go-elements/psetv2"
)

// SignTransaction signs every input of the given partial transaction whose
// prevout is owned by the wallet and returns the updated transaction in
// base64 format. Inputs owned by other parties are left untouched.
func (w *Wallet) SignTransaction(
	_ context.Context, psetBase64 string,
) (string, error) {
	ptx, err := psetv2.NewPsetFromBase64(psetBase64)
	if err != nil {
		return "", fmt.Errorf("failed to parse transaction: %w", err)
	}
	signer, err := psetv2.NewSigner(ptx)
	if err != nil {
		return "", err
	}
	tx, err := ptx.UnsignedTx()
	if err != nil {
		return "", err
	}

	signingScript, outputScript := w.scripts()
	for i, in := range ptx.Inputs {
		prevout := in.GetUtxo()
		if prevout == nil || !bytes.Equal(prevout.Script, outputScript) {
			continue
		}

		sigHashType := in.SigHashType
		if sigHashType == 0 {
			sigHashType = txscript.SigHashAll
		}
		sigHash := tx.HashForWitnessV0(i, signingScript, prevout.Value, sigHashType)

		signature := ecdsa.Sign(w.signingKey, sigHash[:])
		if !signature.Verify(sigHash[:], w.signingKey.PubKey()) {
			return "", fmt.Errorf("signature verification failed for input %d", i)
		}

		sigWithHashType := append(signature.Serialize(), byte(sigHashType))
		if err := signer.SignInput(
			i, sigWithHashType, w.signingKey.PubKey().SerializeCompressed(),
			nil, nil,
		); err != nil {
			return "", err
		}
	}

	return ptx.ToBase64()
}
