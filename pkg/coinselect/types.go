package coinselect

import (
	"github.com/vulpemventures/go-elements/transaction"
)

// UnblindedData holds the secrets revealed by unblinding a confidential
// output. Blinders are hex encoded in the byte order expected by the swap
// protocol and must be forwarded unchanged.
type UnblindedData struct {
	Asset         string
	Value         uint64
	AssetBlinder  string
	AmountBlinder string
}

// SpendableOutput is an unspent output controlled by the wallet. Prevout and
// RangeProof are the opaque spending witness needed to add the output as
// input of a partial transaction. Unblinded is nil when the output could not
// be unblinded; such outputs are never selected.
type SpendableOutput struct {
	TxID       string
	Index      uint32
	Prevout    *transaction.TxOutput
	RangeProof []byte
	Unblinded  *UnblindedData
}

// Value returns the unblinded value of the output, 0 if unknown.
func (o SpendableOutput) Value() uint64 {
	if o.Unblinded == nil {
		return 0
	}
	return o.Unblinded.Value
}

// Asset returns the unblinded asset of the output, empty if unknown.
func (o SpendableOutput) Asset() string {
	if o.Unblinded == nil {
		return ""
	}
	return o.Unblinded.Asset
}

// Target is a funding request: cover Amount minor units of Asset.
type Target struct {
	Asset  string
	Amount uint64
}

// Sum returns the cumulative value of the given outputs.
func Sum(outputs []SpendableOutput) uint64 {
	var total uint64
	for _, o := range outputs {
		total += o.Value()
	}
	return total
}
