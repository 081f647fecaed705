package tradeclient

import (
	"context"
	"errors"
	"strconv"

	"github.com/tdex-network/tdex-trader/pkg/swap"
	trademarket "github.com/tdex-network/tdex-trader/pkg/trade/market"
	tradetype "github.com/tdex-network/tdex-trader/pkg/trade/type"
)

var (
	// ErrNullSwapRequest ...
	ErrNullSwapRequest = errors.New("swap request message must not be null")
)

// TradeProposeOpts is the struct given to TradePropose.
type TradeProposeOpts struct {
	Market      trademarket.Market
	TradeType   tradetype.TradeType
	SwapRequest *swap.SwapRequest
	FeeAmount   uint64
	FeeAsset    string
}

func (o TradeProposeOpts) validate() error {
	if err := o.Market.Validate(); err != nil {
		return err
	}
	if err := o.TradeType.Validate(); err != nil {
		return err
	}
	if o.SwapRequest == nil {
		return ErrNullSwapRequest
	}
	return nil
}

type tradeProposeRequest struct {
	Market      marketDTO         `json:"market"`
	Type        int               `json:"type"`
	SwapRequest *swap.SwapRequest `json:"swapRequest"`
	FeeAmount   string            `json:"feeAmount"`
	FeeAsset    string            `json:"feeAsset"`
}

// TradeProposeReply is the parsed propose response. Exactly one of
// SwapAccept and SwapFail is expected to be set; both missing means the
// provider did not accept the swap.
type TradeProposeReply struct {
	SwapAccept *swap.SwapAccept `json:"swapAccept"`
	SwapFail   *swap.SwapFail   `json:"swapFail"`
}

// TradePropose submits the swap proposal to the provider's propose endpoint
// and returns its reply.
func (c *Client) TradePropose(
	ctx context.Context, opts TradeProposeOpts,
) (*TradeProposeReply, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	req := tradeProposeRequest{
		Market:      marketToDTO(opts.Market),
		Type:        int(opts.TradeType),
		SwapRequest: opts.SwapRequest,
		FeeAmount:   strconv.FormatUint(opts.FeeAmount, 10),
		FeeAsset:    opts.FeeAsset,
	}
	reply := &TradeProposeReply{}
	if err := c.post(ctx, "/trade/propose", req, reply); err != nil {
		return nil, err
	}
	return reply, nil
}
