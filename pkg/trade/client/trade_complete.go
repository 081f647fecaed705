package tradeclient

import (
	"context"
	"errors"

	"github.com/tdex-network/tdex-trader/pkg/swap"
)

var (
	// ErrNullSwapComplete ...
	ErrNullSwapComplete = errors.New("swap complete message must not be null")
)

// TradeCompleteOpts is the struct given to TradeComplete.
type TradeCompleteOpts struct {
	SwapComplete *swap.SwapComplete
}

func (o TradeCompleteOpts) validate() error {
	if o.SwapComplete == nil {
		return ErrNullSwapComplete
	}
	return nil
}

type tradeCompleteRequest struct {
	SwapComplete *swap.SwapComplete `json:"swapComplete"`
}

// TradeCompleteReply is the parsed complete response. A missing txid means
// the provider failed to finalize and broadcast the transaction.
type TradeCompleteReply struct {
	Txid     string         `json:"txid"`
	SwapFail *swap.SwapFail `json:"swapFail"`
}

// TradeComplete submits the signed transaction to the provider's complete
// endpoint, which takes care of finalizing and broadcasting it.
func (c *Client) TradeComplete(
	ctx context.Context, opts TradeCompleteOpts,
) (*TradeCompleteReply, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	req := tradeCompleteRequest{SwapComplete: opts.SwapComplete}
	reply := &TradeCompleteReply{}
	if err := c.post(ctx, "/trade/complete", req, reply); err != nil {
		return nil, err
	}
	return reply, nil
}
