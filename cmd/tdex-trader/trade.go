package main

import (
	"github.com/urfave/cli/v2"

	"github.com/tdex-network/tdex-trader/pkg/trade"
)

var executetrade = cli.Command{
	Name:   "trade",
	Usage:  "swap a pair of assets on the best available market",
	Flags:  pairFlags,
	Action: tradeAction,
}

func tradeAction(ctx *cli.Context) error {
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

	result, err := t.Execute(ctx.Context, trade.ExecuteOpts{
		Market: *market,
		Pair:   pair,
	})
	if err != nil {
		return err
	}

	printJSON(result)

	return nil
}
