package main

import (
	"github.com/urfave/cli/v2"

	"github.com/tdex-network/tdex-trader/internal/config"
)

var balance = cli.Command{
	Name:  "balance",
	Usage: "show the wallet balance for an asset",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "asset",
			Usage: "hex id of the asset, defaults to the network policy asset",
		},
	},
	Action: balanceAction,
}

func balanceAction(ctx *cli.Context) error {
	w, err := getWallet()
	if err != nil {
		return err
	}

	asset := ctx.String("asset")
	if asset == "" {
		asset = config.GetNetwork().AssetID
	}

	totBalance, err := w.Balance(ctx.Context, asset)
	if err != nil {
		return err
	}

	printJSON(map[string]interface{}{
		"asset":   asset,
		"balance": totBalance,
	})

	return nil
}
