package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tdex-network/tdex-trader/internal/config"
	"github.com/tdex-network/tdex-trader/pkg/trade"
	trademarket "github.com/tdex-network/tdex-trader/pkg/trade/market"
)

var pairFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "from-asset",
		Usage:    "hex id of the asset to send",
		Required: true,
	},
	&cli.StringFlag{
		Name:     "to-asset",
		Usage:    "hex id of the asset to receive",
		Required: true,
	},
	&cli.Uint64Flag{
		Name:     "amount",
		Usage:    "amount in satoshis of the asset to send",
		Required: true,
	},
	&cli.StringFlag{
		Name:  "provider",
		Usage: "restrict the trade to the named provider",
	},
}

var preview = cli.Command{
	Name:   "preview",
	Usage:  "preview the outcome of trading a pair on the best available market",
	Flags:  pairFlags,
	Action: previewAction,
}

func previewAction(ctx *cli.Context) error {
	w, err := getWallet()
	if err != nil {
		return err
	}
	t, err := getTrade(w)
	if err != nil {
		return err
	}

	pair := pairFromFlags(ctx)
	market, err := findBestMarket(ctx, t, pair)
	if err != nil {
		return err
	}

	previewedPair, rawPreview, err := t.PreviewPair(ctx.Context, trade.PreviewPairOpts{
		Market: *market,
		Pair:   pair,
		Side:   trade.SideFrom,
	})
	if err != nil {
		return err
	}

	printJSON(map[string]interface{}{
		"provider":      market.Provider.Name,
		"market":        market,
		"sendAsset":     previewedPair.From.Asset,
		"sendAmount":    previewedPair.From.Amount,
		"receiveAsset":  previewedPair.Dest.Asset,
		"receiveAmount": previewedPair.Dest.Amount,
		"feeAsset":      rawPreview.FeeAsset,
		"feeAmount":     rawPreview.FeeAmount,
	})

	return nil
}

func pairFromFlags(ctx *cli.Context) trademarket.Pair {
	return trademarket.Pair{
		From: trademarket.PairSide{
			Asset:  ctx.String("from-asset"),
			Amount: ctx.Uint64("amount"),
		},
		Dest: trademarket.PairSide{
			Asset: ctx.String("to-asset"),
		},
	}
}

func findBestMarket(
	ctx *cli.Context, t *trade.Trade, pair trademarket.Pair,
) (*trademarket.Market, error) {
	providers, err := getProviders(ctx.Context)
	if err != nil {
		return nil, err
	}

	balancePolicy := config.GetBalancePolicy()
	discovered, err := t.DiscoverMarkets(ctx.Context, providers, trade.DiscoverOpts{
		Concurrency:  config.GetInt(config.DiscoveryConcurrencyKey),
		WithBalances: balancePolicy != trade.BalanceIgnore,
	})
	if err != nil {
		return nil, err
	}

	market := trade.BestMarket(discovered, pair, trade.BestMarketOpts{
		PreferredProvider: ctx.String("provider"),
		BalancePolicy:     balancePolicy,
	})
	if market == nil {
		return nil, fmt.Errorf("no market found trading the given pair")
	}
	return market, nil
}
