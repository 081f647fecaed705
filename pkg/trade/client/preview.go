package tradeclient

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	trademarket "github.com/tdex-network/tdex-trader/pkg/trade/market"
	tradetype "github.com/tdex-network/tdex-trader/pkg/trade/type"
)

// amountTooLargeCode is the code providers answer with when the requested
// amount exceeds the tradable ceiling of the market.
const amountTooLargeCode = 2

var (
	// ErrAmountTooLarge ...
	ErrAmountTooLarge = errors.New(
		"amount exceeds the maximum the provider accepts to trade",
	)
)

// Preview is a provider-returned quote: the counter-value of the requested
// amount and the fee charged, both in minor units of their respective assets.
type Preview struct {
	Amount    uint64
	Asset     string
	FeeAmount uint64
	FeeAsset  string
}

// PreviewTradeOpts is the struct given to PreviewTrade.
type PreviewTradeOpts struct {
	Market    trademarket.Market
	TradeType tradetype.TradeType
	Amount    uint64
	Asset     string
	FeeAsset  string
}

func (o PreviewTradeOpts) validate() error {
	if err := o.Market.Validate(); err != nil {
		return err
	}
	if err := o.TradeType.Validate(); err != nil {
		return err
	}
	if o.Amount <= 0 {
		return fmt.Errorf("preview amount must be a positive satoshi amount")
	}
	return nil
}

type previewTradeRequest struct {
	Market   marketDTO `json:"market"`
	Type     int       `json:"type"`
	Amount   string    `json:"amount"`
	Asset    string    `json:"asset"`
	FeeAsset string    `json:"feeAsset"`
}

type previewDTO struct {
	Amount    string `json:"amount"`
	Asset     string `json:"asset"`
	FeeAmount string `json:"feeAmount"`
	FeeAsset  string `json:"feeAsset"`
}

func (dto previewDTO) parse() (*Preview, error) {
	if len(dto.Asset) <= 0 || len(dto.FeeAsset) <= 0 {
		return nil, fmt.Errorf("%w: missing preview assets", ErrInvalidProviderResponse)
	}
	amount, err := parseAmount(dto.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed preview amount", ErrInvalidProviderResponse)
	}
	feeAmount, err := parseAmount(dto.FeeAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed preview fee", ErrInvalidProviderResponse)
	}
	return &Preview{
		Amount:    amount,
		Asset:     dto.Asset,
		FeeAmount: feeAmount,
		FeeAsset:  dto.FeeAsset,
	}, nil
}

type previewTradeResponse struct {
	Previews []previewDTO `json:"previews"`
}

// PreviewTrade asks the provider to quote the counter-value of trading the
// given amount of the given asset on the market. A provider signalling a
// size-limit rejection is surfaced as ErrAmountTooLarge.
func (c *Client) PreviewTrade(
	ctx context.Context, opts PreviewTradeOpts,
) (*Preview, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	req := previewTradeRequest{
		Market:   marketToDTO(opts.Market),
		Type:     int(opts.TradeType),
		Amount:   strconv.FormatUint(opts.Amount, 10),
		Asset:    opts.Asset,
		FeeAsset: opts.FeeAsset,
	}
	res := previewTradeResponse{}
	if err := c.post(ctx, "/trade/preview", req, &res); err != nil {
		provErr := &ProviderError{}
		if errors.As(err, &provErr) && provErr.Code == amountTooLargeCode {
			return nil, fmt.Errorf("%w: %s", ErrAmountTooLarge, provErr.Message)
		}
		return nil, err
	}

	if len(res.Previews) <= 0 {
		return nil, fmt.Errorf("%w: empty preview list", ErrInvalidProviderResponse)
	}
	return res.Previews[0].parse()
}
