package trade

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-trader/pkg/coinselect"
	"github.com/tdex-network/tdex-trader/pkg/swap"
	tradeclient "github.com/tdex-network/tdex-trader/pkg/trade/client"
	trademarket "github.com/tdex-network/tdex-trader/pkg/trade/market"
)

// Status is the phase a trade attempt is in.
type Status int

const (
	// StatusProposing covers preview, funding and proposal submission.
	StatusProposing Status = iota
	// StatusAwaitingSignature covers the external signing of the accepted
	// transaction.
	StatusAwaitingSignature
	// StatusCompleting covers the submission of the signed transaction.
	StatusCompleting
	// StatusCompleted is the terminal state of a successful trade.
	StatusCompleted
	// StatusError is the terminal state of a failed trade. Attempts are
	// never retried automatically, the caller decides whether to start a
	// new one from scratch.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusProposing:
		return "PROPOSING"
	case StatusAwaitingSignature:
		return "AWAITING_SIGNATURE"
	case StatusCompleting:
		return "COMPLETING"
	case StatusCompleted:
		return "COMPLETED"
	default:
		return "ERROR"
	}
}

// MarshalJSON renders the status by name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Result is the outcome of a trade attempt. On failure Status is StatusError
// and FailureReason retains a human-readable explanation of the typed error.
type Result struct {
	ID            string
	Status        Status
	TxID          string
	FailureReason string
}

// ExecuteOpts is the struct given to the Execute method. The pair's From
// amount is the authoritative one, the Dest amount is derived from the
// provider's preview.
type ExecuteOpts struct {
	Market trademarket.Market
	Pair   trademarket.Pair
}

func (o ExecuteOpts) validate() error {
	if err := o.Market.Validate(); err != nil {
		return err
	}
	if err := o.Pair.Validate(); err != nil {
		return err
	}
	if !o.Market.Matches(o.Pair) {
		return ErrInvalidPair
	}
	if o.Pair.From.Amount <= 0 {
		return ErrMissingAmount
	}
	return nil
}

// Execute negotiates a full swap of the pair against the given market:
// preview, funding, proposal, external signing and completion, in this order
// and with no automatic retry. It returns the attempt result carrying the
// final transaction id on success; on failure the returned error wraps the
// typed failure kind and the result retains the reason.
func (t *Trade) Execute(ctx context.Context, opts ExecuteOpts) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	result := &Result{ID: uuid.NewString(), Status: StatusProposing}
	logger := log.WithField("trade_id", result.ID)

	client, err := t.client(opts.Market.Provider.Endpoint)
	if err != nil {
		return t.fail(result, err)
	}

	accept, err := t.propose(ctx, client, opts, result, logger)
	if err != nil {
		return t.fail(result, err)
	}

	if err := checkAborted(ctx); err != nil {
		return t.fail(result, err)
	}
	result.Status = StatusAwaitingSignature
	logger.WithField("status", result.Status.String()).Debug("swap accepted")

	signedTx, err := t.wallet.SignTransaction(ctx, accept.Transaction)
	if err != nil {
		return t.fail(result, fmt.Errorf("%w: %s", ErrSigningFailed, err))
	}
	if len(signedTx) <= 0 {
		return t.fail(result, ErrSigningFailed)
	}

	if err := checkAborted(ctx); err != nil {
		return t.fail(result, err)
	}
	result.Status = StatusCompleting
	logger.WithField("status", result.Status.String()).Debug("transaction signed")

	swapComplete, err := swap.Complete(swap.CompleteOpts{
		Accept:      accept,
		Transaction: signedTx,
	})
	if err != nil {
		return t.fail(result, fmt.Errorf("%w: %s", ErrCompletionFailed, err))
	}
	reply, err := client.TradeComplete(ctx, tradeclient.TradeCompleteOpts{
		SwapComplete: swapComplete,
	})
	if err != nil {
		return t.fail(result, fmt.Errorf("%w: %s", ErrCompletionFailed, err))
	}
	if reply.SwapFail != nil {
		return t.fail(result, fmt.Errorf(
			"%w: %s", ErrCompletionFailed, reply.SwapFail.FailureMessage,
		))
	}
	if len(reply.Txid) <= 0 {
		return t.fail(result, fmt.Errorf(
			"%w: no txid in provider response", ErrCompletionFailed,
		))
	}

	result.Status = StatusCompleted
	result.TxID = reply.Txid
	logger.WithField("txid", result.TxID).Debug("trade completed")
	return result, nil
}

// propose runs the Proposing phase: price preview, coin selection, swap
// transaction construction and proposal submission.
func (t *Trade) propose(
	ctx context.Context, client *tradeclient.Client, opts ExecuteOpts,
	result *Result, logger *log.Entry,
) (*swap.SwapAccept, error) {
	tradeType := TradeTypeForMarket(opts.Market, opts.Pair)
	logger.WithFields(log.Fields{
		"type":     tradeType.String(),
		"provider": opts.Market.Provider.Name,
	}).Debug("proposing trade")

	preview, err := client.PreviewTrade(ctx, tradeclient.PreviewTradeOpts{
		Market:    opts.Market,
		TradeType: tradeType,
		Amount:    opts.Pair.From.Amount,
		Asset:     opts.Pair.From.Asset,
		FeeAsset:  opts.Pair.Dest.Asset,
	})
	if err != nil {
		if errors.Is(err, tradeclient.ErrAmountTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrPreviewUnavailable, err)
	}

	// The trading fee is either funded on top of the sent amount or taken
	// out of the received one, depending on which asset it is charged in.
	fundingAmount := opts.Pair.From.Amount
	payoutAmount := preview.Amount
	if preview.FeeAsset == opts.Pair.From.Asset {
		fundingAmount += preview.FeeAmount
	} else {
		if preview.FeeAmount > payoutAmount {
			return nil, fmt.Errorf(
				"%w: fee exceeds the quoted amount", ErrPreviewUnavailable,
			)
		}
		payoutAmount -= preview.FeeAmount
	}

	outputs, err := t.wallet.SpendableOutputs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInsufficientFunds, err)
	}
	selected := coinselect.Select(outputs, coinselect.Target{
		Asset:  opts.Pair.From.Asset,
		Amount: fundingAmount,
	})
	if len(selected) <= 0 {
		return nil, ErrInsufficientFunds
	}
	changeAmount := coinselect.Sum(selected) - fundingAmount

	payoutAddress, err := t.wallet.NextAddress(ctx)
	if err != nil {
		return nil, err
	}
	changeAddress := ""
	if changeAmount > 0 {
		if changeAddress, err = t.wallet.NextChangeAddress(ctx); err != nil {
			return nil, err
		}
	}

	psetBase64, unblindedIns, err := NewSwapTransaction(SwapTxOpts{
		Inputs:        selected,
		PayoutAsset:   opts.Pair.Dest.Asset,
		PayoutAmount:  payoutAmount,
		PayoutAddress: payoutAddress,
		ChangeAsset:   opts.Pair.From.Asset,
		ChangeAmount:  changeAmount,
		ChangeAddress: changeAddress,
	})
	if err != nil {
		return nil, err
	}

	swapRequest, err := swap.Request(swap.RequestOpts{
		AssetToSend:     opts.Pair.From.Asset,
		AmountToSend:    opts.Pair.From.Amount,
		AssetToReceive:  opts.Pair.Dest.Asset,
		AmountToReceive: preview.Amount,
		FeeAsset:        preview.FeeAsset,
		FeeAmount:       preview.FeeAmount,
		Transaction:     psetBase64,
		UnblindedInputs: unblindedIns,
	})
	if err != nil {
		return nil, err
	}

	reply, err := client.TradePropose(ctx, tradeclient.TradeProposeOpts{
		Market:      opts.Market,
		TradeType:   tradeType,
		SwapRequest: swapRequest,
		FeeAmount:   preview.FeeAmount,
		FeeAsset:    preview.FeeAsset,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSwapNotAccepted, err)
	}
	if reply.SwapFail != nil {
		return nil, fmt.Errorf(
			"%w: %s", ErrSwapNotAccepted, reply.SwapFail.FailureMessage,
		)
	}
	if reply.SwapAccept == nil || len(reply.SwapAccept.Transaction) <= 0 {
		return nil, ErrSwapNotAccepted
	}
	return reply.SwapAccept, nil
}

func (t *Trade) fail(result *Result, err error) (*Result, error) {
	result.Status = StatusError
	result.FailureReason = err.Error()
	log.WithField("trade_id", result.ID).WithError(err).Debug("trade failed")
	return result, err
}

func checkAborted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s", ErrTradeAborted, err)
	}
	return nil
}
