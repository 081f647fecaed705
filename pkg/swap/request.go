package swap

import (
	"fmt"

	"github.com/vulpemventures/go-elements/elementsutil"
	"github.com/vulpemventures/go-elements/psetv2"
)

// RequestOpts is the struct given to the Request method.
type RequestOpts struct {
	ID              string
	AssetToSend     string
	AmountToSend    uint64
	AssetToReceive  string
	AmountToReceive uint64
	FeeAsset        string
	FeeAmount       uint64
	Transaction     string
	UnblindedInputs []UnblindedInput
}

func (o RequestOpts) id() string {
	if o.ID != "" {
		return o.ID
	}
	return newID()
}

// Request returns a new SwapRequest message for the given terms, after
// checking that the provided transaction is a well-formed partial
// transaction matching them.
func Request(opts RequestOpts) (*SwapRequest, error) {
	if err := validateRequestTx(opts); err != nil {
		return nil, err
	}

	return &SwapRequest{
		ID:              opts.id(),
		AssetP:          opts.AssetToSend,
		AmountP:         opts.AmountToSend,
		AssetR:          opts.AssetToReceive,
		AmountR:         opts.AmountToReceive,
		Transaction:     opts.Transaction,
		UnblindedInputs: opts.UnblindedInputs,
	}, nil
}

func validateRequestTx(opts RequestOpts) error {
	ptx, err := psetv2.NewPsetFromBase64(opts.Transaction)
	if err != nil {
		return fmt.Errorf("invalid swap transaction format")
	}

	var amountP, amountR uint64
	for _, in := range opts.UnblindedInputs {
		if uint64(in.Index) >= ptx.Global.InputCount {
			return fmt.Errorf("unblinded input index %d out of range", in.Index)
		}
		// Sum cumulative amountP.
		if in.Asset == opts.AssetToSend {
			amountP += in.Amount
		}
	}

	for _, out := range ptx.Outputs {
		asset := elementsutil.TxIDFromBytes(out.Asset)
		// Sum cumulative amountR.
		if asset == opts.AssetToReceive {
			amountR += uint64(out.Value)
		}
		// Subtract any change amount of assetP from amountP.
		if asset == opts.AssetToSend {
			amountP -= uint64(out.Value)
		}
	}

	// The fee may have been added to the sent amount or subtracted from the
	// received one. Try both ways and fail only if neither matches.
	amounts := map[string]uint64{
		opts.AssetToSend:    amountP,
		opts.AssetToReceive: amountR,
	}
	amounts[opts.FeeAsset] += opts.FeeAmount
	if amounts[opts.AssetToSend] == opts.AmountToSend &&
		amounts[opts.AssetToReceive] == opts.AmountToReceive {
		return nil
	}

	amounts = map[string]uint64{
		opts.AssetToSend:    amountP,
		opts.AssetToReceive: amountR,
	}
	amounts[opts.FeeAsset] -= opts.FeeAmount
	if amounts[opts.AssetToSend] != opts.AmountToSend ||
		amounts[opts.AssetToReceive] != opts.AmountToReceive {
		return fmt.Errorf(
			"transaction in/out amounts do not match the proposal terms",
		)
	}

	return nil
}
