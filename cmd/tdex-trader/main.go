package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/tdex-network/tdex-trader/internal/config"
	"github.com/tdex-network/tdex-trader/pkg/registry"
	"github.com/tdex-network/tdex-trader/pkg/trade"
	"github.com/tdex-network/tdex-trader/pkg/wallet"
)

func main() {
	app := cli.NewApp()

	app.Version = version
	app.Name = "tdex-trader CLI"
	app.Usage = "Command line interface for trading against TDEX providers"
	app.Commands = append(
		app.Commands,
		&providers,
		&markets,
		&address,
		&balance,
		&preview,
		&executetrade,
	)

	log.SetLevel(config.GetLogLevel())

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

var version = "dev"

func getWallet() (*wallet.Wallet, error) {
	explorerSvc, err := config.GetExplorer()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to explorer: %w", err)
	}

	return wallet.NewWallet(wallet.NewWalletOpts{
		SigningKeyHex:  config.GetString(config.SigningKeyKey),
		BlindingKeyHex: config.GetString(config.BlindingKeyKey),
		Network:        config.GetNetwork(),
		Explorer:       explorerSvc,
	})
}

func getTrade(w trade.Wallet) (*trade.Trade, error) {
	return trade.NewTrade(trade.NewTradeOpts{
		Wallet:      w,
		HTTPTimeout: config.GetHTTPTimeout(),
	})
}

func getProviders(ctx context.Context) ([]registry.Provider, error) {
	registryURL := config.GetString(config.RegistryURLKey)
	if registryURL == "" {
		registryURL = registry.URLForNetwork(config.GetNetwork().Name)
	}
	return registry.FetchProviders(ctx, registryURL)
}

func printJSON(v interface{}) {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(buf))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[tdex-trader] %v\n", err)
	os.Exit(1)
}
