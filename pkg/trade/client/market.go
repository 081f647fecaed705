package tradeclient

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-trader/pkg/registry"
	trademarket "github.com/tdex-network/tdex-trader/pkg/trade/market"
)

type marketDTO struct {
	BaseAsset  string `json:"baseAsset"`
	QuoteAsset string `json:"quoteAsset"`
}

func marketToDTO(m trademarket.Market) marketDTO {
	return marketDTO{BaseAsset: m.BaseAsset, QuoteAsset: m.QuoteAsset}
}

type sideAmountsDTO struct {
	BaseAsset  string `json:"baseAsset"`
	QuoteAsset string `json:"quoteAsset"`
}

func (dto sideAmountsDTO) parse() (*trademarket.SideAmounts, error) {
	base, err := parseAmount(dto.BaseAsset)
	if err != nil {
		return nil, err
	}
	quote, err := parseAmount(dto.QuoteAsset)
	if err != nil {
		return nil, err
	}
	return &trademarket.SideAmounts{BaseAsset: base, QuoteAsset: quote}, nil
}

type feeDTO struct {
	PercentageFee *sideAmountsDTO `json:"percentageFee"`
	FixedFee      *sideAmountsDTO `json:"fixedFee"`
}

type marketWithFeeDTO struct {
	Market *marketDTO `json:"market"`
	Fee    *feeDTO    `json:"fee"`
}

type listMarketsResponse struct {
	Markets []marketWithFeeDTO `json:"markets"`
}

// ListMarkets fetches the tradable markets of the provider along with their
// fee schedule. Markets with a malformed shape are skipped.
func (c *Client) ListMarkets(
	ctx context.Context, provider registry.Provider,
) ([]trademarket.Market, error) {
	res := listMarketsResponse{}
	if err := c.post(ctx, "/markets", struct{}{}, &res); err != nil {
		return nil, err
	}

	markets := make([]trademarket.Market, 0, len(res.Markets))
	for _, dto := range res.Markets {
		if dto.Market == nil {
			continue
		}
		market := trademarket.Market{
			Provider:   provider,
			BaseAsset:  dto.Market.BaseAsset,
			QuoteAsset: dto.Market.QuoteAsset,
		}
		if err := market.Validate(); err != nil {
			continue
		}
		market.Fee = parseFee(dto.Fee)
		markets = append(markets, market)
	}
	return markets, nil
}

type marketPriceRequest struct {
	Market marketDTO `json:"market"`
}

type marketPriceResponse struct {
	SpotPrice         *decimal.Decimal `json:"spotPrice"`
	MinTradableAmount string           `json:"minTradableAmount"`
}

// MarketPrice fetches the current spot price of the given market.
func (c *Client) MarketPrice(
	ctx context.Context, market trademarket.Market,
) (*trademarket.Price, error) {
	res := marketPriceResponse{}
	if err := c.post(
		ctx, "/market/price", marketPriceRequest{marketToDTO(market)}, &res,
	); err != nil {
		return nil, err
	}

	if res.SpotPrice == nil {
		return nil, fmt.Errorf("%w: missing spot price", ErrInvalidProviderResponse)
	}
	minTradable, err := parseAmount(res.MinTradableAmount)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: malformed min tradable amount", ErrInvalidProviderResponse,
		)
	}

	return &trademarket.Price{
		SpotPrice:         *res.SpotPrice,
		MinTradableAmount: minTradable,
	}, nil
}

type marketBalanceRequest struct {
	Market marketDTO `json:"market"`
}

type marketBalanceResponse struct {
	Balance *struct {
		BaseAmount  string `json:"baseAmount"`
		QuoteAmount string `json:"quoteAmount"`
	} `json:"balance"`
}

// MarketBalance fetches the liquidity the provider holds on both sides of the
// given market.
func (c *Client) MarketBalance(
	ctx context.Context, market trademarket.Market,
) (*trademarket.Balance, error) {
	res := marketBalanceResponse{}
	if err := c.post(
		ctx, "/market/balance", marketBalanceRequest{marketToDTO(market)}, &res,
	); err != nil {
		return nil, err
	}

	if res.Balance == nil {
		return nil, fmt.Errorf("%w: missing balance", ErrInvalidProviderResponse)
	}
	base, err := parseAmount(res.Balance.BaseAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed base amount", ErrInvalidProviderResponse)
	}
	quote, err := parseAmount(res.Balance.QuoteAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed quote amount", ErrInvalidProviderResponse)
	}

	return &trademarket.Balance{BaseAmount: base, QuoteAmount: quote}, nil
}

func parseFee(dto *feeDTO) *trademarket.Fee {
	if dto == nil || dto.PercentageFee == nil || dto.FixedFee == nil {
		return nil
	}
	percentage, err := dto.PercentageFee.parse()
	if err != nil {
		return nil
	}
	fixed, err := dto.FixedFee.parse()
	if err != nil {
		return nil
	}
	return &trademarket.Fee{PercentageFee: *percentage, FixedFee: *fixed}
}

// parseAmount decodes a decimal-string encoded amount of minor units. An
// empty string counts as zero, the gateway omits zero-valued fields.
func parseAmount(amount string) (uint64, error) {
	if len(amount) <= 0 {
		return 0, nil
	}
	return strconv.ParseUint(amount, 10, 64)
}
