package trade

import (
	"errors"

	"github.com/btcsuite/btcd/txscript"
	"github.com/tdex-network/tdex-trader/pkg/coinselect"
	"github.com/tdex-network/tdex-trader/pkg/swap"
	"github.com/vulpemventures/go-elements/address"
	"github.com/vulpemventures/go-elements/psetv2"
)

var (
	// ErrNullInputs ...
	ErrNullInputs = errors.New("swap transaction must spend at least one output")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address is not a valid confidential address")
	// ErrInvalidPayout ...
	ErrInvalidPayout = errors.New("payout amount must be a positive satoshi amount")
)

// SwapTxOpts is the struct given to NewSwapTransaction.
type SwapTxOpts struct {
	Inputs        []coinselect.SpendableOutput
	PayoutAsset   string
	PayoutAmount  uint64
	PayoutAddress string
	ChangeAsset   string
	ChangeAmount  uint64
	ChangeAddress string
}

func (o SwapTxOpts) validate() error {
	if len(o.Inputs) <= 0 {
		return ErrNullInputs
	}
	if o.PayoutAmount <= 0 {
		return ErrInvalidPayout
	}
	if _, _, err := parseConfidentialAddress(o.PayoutAddress); err != nil {
		return err
	}
	if o.ChangeAmount > 0 {
		if _, _, err := parseConfidentialAddress(o.ChangeAddress); err != nil {
			return err
		}
	}
	return nil
}

// NewSwapTransaction builds the partial transaction skeleton of a swap
// proposal: one input per selected output carrying its spending witness, one
// payout output of the destination asset and, when the inputs overshoot the
// funding amount, one change output of the funding asset. It returns the
// transaction in base64 format along with the proposal's unblinded input
// list, re-indexed to the inputs' positions in the transaction.
func NewSwapTransaction(opts SwapTxOpts) (string, []swap.UnblindedInput, error) {
	if err := opts.validate(); err != nil {
		return "", nil, err
	}

	ins := make([]psetv2.InputArgs, 0, len(opts.Inputs))
	unblindedIns := make([]swap.UnblindedInput, 0, len(opts.Inputs))
	for i, in := range opts.Inputs {
		ins = append(ins, psetv2.InputArgs{
			Txid:    in.TxID,
			TxIndex: in.Index,
		})
		if in.Unblinded != nil {
			unblindedIns = append(unblindedIns, swap.UnblindedInput{
				Index:         uint32(i),
				Asset:         in.Unblinded.Asset,
				Amount:        in.Unblinded.Value,
				AssetBlinder:  in.Unblinded.AssetBlinder,
				AmountBlinder: in.Unblinded.AmountBlinder,
			})
		}
	}

	payoutScript, payoutBlindKey, _ := parseConfidentialAddress(opts.PayoutAddress)
	outs := []psetv2.OutputArgs{
		{
			Asset:        opts.PayoutAsset,
			Amount:       opts.PayoutAmount,
			Script:       payoutScript,
			BlindingKey:  payoutBlindKey,
			BlinderIndex: 0,
		},
	}
	if opts.ChangeAmount > 0 {
		changeScript, changeBlindKey, _ := parseConfidentialAddress(opts.ChangeAddress)
		outs = append(outs, psetv2.OutputArgs{
			Asset:        opts.ChangeAsset,
			Amount:       opts.ChangeAmount,
			Script:       changeScript,
			BlindingKey:  changeBlindKey,
			BlinderIndex: 0,
		})
	}

	ptx, err := psetv2.New(ins, outs, nil)
	if err != nil {
		return "", nil, err
	}

	updater, err := psetv2.NewUpdater(ptx)
	if err != nil {
		return "", nil, err
	}
	for i, in := range opts.Inputs {
		if err := updater.AddInWitnessUtxo(i, in.Prevout); err != nil {
			return "", nil, err
		}
		if len(in.RangeProof) > 0 {
			if err := updater.AddInUtxoRangeProof(i, in.RangeProof); err != nil {
				return "", nil, err
			}
		}
		if err := updater.AddInSighashType(i, txscript.SigHashAll); err != nil {
			return "", nil, err
		}
	}

	psetBase64, err := ptx.ToBase64()
	if err != nil {
		return "", nil, err
	}
	return psetBase64, unblindedIns, nil
}

func parseConfidentialAddress(addr string) ([]byte, []byte, error) {
	script, err := address.ToOutputScript(addr)
	if err != nil {
		return nil, nil, ErrInvalidAddress
	}
	info, err := address.FromConfidential(addr)
	if err != nil {
		return nil, nil, ErrInvalidAddress
	}
	return script, info.BlindingKey, nil
}
