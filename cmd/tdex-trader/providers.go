package main

import (
	"github.com/urfave/cli/v2"
)

var providers = cli.Command{
	Name:   "providers",
	Usage:  "list the liquidity providers registered for the configured network",
	Action: providersAction,
}

func providersAction(ctx *cli.Context) error {
	list, err := getProviders(ctx.Context)
	if err != nil {
		return err
	}

	printJSON(list)

	return nil
}
