package main

import (
	"github.com/urfave/cli/v2"

	"github.com/tdex-network/tdex-trader/internal/config"
	"github.com/tdex-network/tdex-trader/pkg/trade"
)

var markets = cli.Command{
	Name:  "markets",
	Usage: "list the tradable markets discovered across all providers",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "with-balances",
			Usage: "also fetch the balances of every market",
		},
		&cli.BoolFlag{
			Name:  "skip-probe",
			Usage: "skip the provider compatibility check",
		},
	},
	Action: marketsAction,
}

func marketsAction(ctx *cli.Context) error {
	w, err := getWallet()
	if err != nil {
		return err
	}
	t, err := getTrade(w)
	if err != nil {
		return err
	}

	providers, err := getProviders(ctx.Context)
	if err != nil {
		return err
	}

	discovered, err := t.DiscoverMarkets(ctx.Context, providers, trade.DiscoverOpts{
		Concurrency:      config.GetInt(config.DiscoveryConcurrencyKey),
		SkipVersionProbe: ctx.Bool("skip-probe"),
		WithBalances:     ctx.Bool("with-balances"),
	})
	if err != nil {
		return err
	}

	printJSON(discovered)

	return nil
}
