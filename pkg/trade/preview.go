package trade

import (
	"context"
	"errors"
	"fmt"

	tradeclient "github.com/tdex-network/tdex-trader/pkg/trade/client"
	trademarket "github.com/tdex-network/tdex-trader/pkg/trade/market"
)

// Side names the leg of a pair whose amount the user typed.
type Side int

const (
	// SideFrom previews from the amount the user disposes of.
	SideFrom Side = iota
	// SideDest previews from the amount the user wants to acquire.
	SideDest
)

// PreviewPairOpts is the struct given to PreviewPair.
type PreviewPairOpts struct {
	Market trademarket.Market
	Pair   trademarket.Pair
	// Side is the leg of the pair whose amount is authoritative.
	Side Side
}

func (o PreviewPairOpts) validate() error {
	if err := o.Market.Validate(); err != nil {
		return err
	}
	if err := o.Pair.Validate(); err != nil {
		return err
	}
	amount := o.Pair.From.Amount
	if o.Side == SideDest {
		amount = o.Pair.Dest.Amount
	}
	if amount <= 0 {
		return ErrMissingAmount
	}
	return nil
}

// PreviewPair asks the market's provider for a price preview of the set side
// of the pair and returns the pair completed with the derived amount of the
// other side, along with the raw preview.
func (t *Trade) PreviewPair(
	ctx context.Context, opts PreviewPairOpts,
) (*trademarket.Pair, *tradeclient.Preview, error) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}

	setSide, otherSide := opts.Pair.From, opts.Pair.Dest
	if opts.Side == SideDest {
		setSide, otherSide = opts.Pair.Dest, opts.Pair.From
	}

	client, err := t.client(opts.Market.Provider.Endpoint)
	if err != nil {
		return nil, nil, err
	}

	preview, err := client.PreviewTrade(ctx, tradeclient.PreviewTradeOpts{
		Market:    opts.Market,
		TradeType: TradeTypeForMarket(opts.Market, opts.Pair),
		Amount:    setSide.Amount,
		Asset:     setSide.Asset,
		FeeAsset:  otherSide.Asset,
	})
	if err != nil {
		if errors.Is(err, tradeclient.ErrAmountTooLarge) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %s", ErrPreviewUnavailable, err)
	}

	// The preview quotes the counter-asset amount gross of the trading fee:
	// what the user receives is the quote minus the fee, what they must fund
	// to acquire a wanted amount is the quote plus the fee.
	derived := preview.Amount
	if opts.Side == SideFrom {
		if preview.FeeAmount > derived {
			return nil, nil, fmt.Errorf(
				"%w: fee exceeds the quoted amount", ErrPreviewUnavailable,
			)
		}
		derived -= preview.FeeAmount
	} else {
		derived += preview.FeeAmount
	}

	pair := opts.Pair
	if opts.Side == SideFrom {
		pair.Dest.Amount = derived
	} else {
		pair.From.Amount = derived
	}
	return &pair, preview, nil
}
