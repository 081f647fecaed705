// Package swap builds and validates the three messages of the swap
// handshake: a proposer sends a SwapRequest, the counter-party answers with
// a SwapAccept carrying the countersigned-to-be transaction, and the
// proposer finalizes with a SwapComplete.
//
// All monetary fields are serialized as decimal strings of minor units,
// never as binary floats.
package swap

import (
	"github.com/thanhpk/randstr"
)

// UnblindedInput discloses the secrets of one transaction input to the
// counter-party so that it can verify value conservation without learning
// anything else about the wallet. Index refers to the input's position in
// the swap transaction. Blinders are carried unchanged, in the byte order
// the wallet disclosed them.
type UnblindedInput struct {
	Index         uint32 `json:"index"`
	Asset         string `json:"asset"`
	Amount        uint64 `json:"amount,string"`
	AssetBlinder  string `json:"assetBlinder"`
	AmountBlinder string `json:"amountBlinder"`
}

// SwapRequest is the proposal message. AssetP/AmountP is what the proposer
// sends, AssetR/AmountR what it expects to receive.
type SwapRequest struct {
	ID              string           `json:"id"`
	AssetP          string           `json:"assetP"`
	AmountP         uint64           `json:"amountP,string"`
	AssetR          string           `json:"assetR"`
	AmountR         uint64           `json:"amountR,string"`
	Transaction     string           `json:"transaction"`
	UnblindedInputs []UnblindedInput `json:"unblindedInputs"`
}

// SwapAccept is the counter-party's answer to a SwapRequest. Transaction is
// the proposal transaction completed with the counter-party's inputs and
// outputs, ready to be signed by the proposer.
type SwapAccept struct {
	ID              string           `json:"id"`
	RequestID       string           `json:"requestId"`
	Transaction     string           `json:"transaction"`
	UnblindedInputs []UnblindedInput `json:"unblindedInputs"`
}

// SwapComplete finalizes the handshake with the proposer's signatures.
type SwapComplete struct {
	ID          string `json:"id"`
	AcceptID    string `json:"acceptId"`
	Transaction string `json:"transaction"`
}

// SwapFail is returned by the counter-party in place of an accept or of a
// completion when the swap is rejected.
type SwapFail struct {
	ID             string `json:"id"`
	MessageID      string `json:"messageId"`
	FailureCode    uint32 `json:"failureCode"`
	FailureMessage string `json:"failureMessage"`
}

// newID mints the short random identifier making swap messages idempotent.
func newID() string {
	return randstr.Hex(8)
}
