package main

import (
	"github.com/urfave/cli/v2"
)

var address = cli.Command{
	Name:   "address",
	Usage:  "show the confidential address of the trading wallet",
	Action: addressAction,
}

func addressAction(_ *cli.Context) error {
	w, err := getWallet()
	if err != nil {
		return err
	}

	printJSON(map[string]string{"address": w.Address()})

	return nil
}
