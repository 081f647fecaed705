package config

import (
	"fmt"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tdex-network/tdex-trader/pkg/explorer"
	"github.com/tdex-network/tdex-trader/pkg/explorer/esplora"
	"github.com/tdex-network/tdex-trader/pkg/trade"
	"github.com/vulpemventures/go-elements/network"
)

const (
	// NetworkKey is the network to use. Either "liquid", "testnet" or "regtest"
	NetworkKey = "NETWORK"
	// ExplorerEndpointKey is the endpoint of the esplora REST API used to
	// fetch and unblind the wallet unspents
	ExplorerEndpointKey = "EXPLORER_ENDPOINT"
	// ExplorerRequestTimeoutKey are the milliseconds to wait for explorer
	// responses before timing out
	ExplorerRequestTimeoutKey = "EXPLORER_REQUEST_TIMEOUT"
	// RegistryURLKey overrides the default registry where providers are
	// enumerated for the selected network
	RegistryURLKey = "REGISTRY_URL"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// HTTPTimeoutKey are the milliseconds to wait for provider responses
	// before timing out
	HTTPTimeoutKey = "HTTP_TIMEOUT"
	// DiscoveryConcurrencyKey is the number of providers queried in parallel
	// during market discovery
	DiscoveryConcurrencyKey = "DISCOVERY_CONCURRENCY"
	// BalancePolicyKey tunes how market balances are taken into account when
	// ranking markets. Either "prefer", "require" or "ignore"
	BalancePolicyKey = "BALANCE_POLICY"
	// SigningKeyKey is the hex encoded private key of the wallet
	SigningKeyKey = "SIGNING_KEY"
	// BlindingKeyKey is the hex encoded blinding private key of the wallet
	BlindingKeyKey = "BLINDING_KEY"

	balancePolicyPrefer  = "prefer"
	balancePolicyRequire = "require"
	balancePolicyIgnore  = "ignore"
)

var vip *viper.Viper

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("TRADER")
	vip.AutomaticEnv()

	vip.SetDefault(NetworkKey, network.Liquid.Name)
	vip.SetDefault(ExplorerEndpointKey, "https://blockstream.info/liquid/api")
	vip.SetDefault(ExplorerRequestTimeoutKey, 15000)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(HTTPTimeoutKey, 15000)
	vip.SetDefault(DiscoveryConcurrencyKey, trade.DefaultDiscoveryConcurrency)
	vip.SetDefault(BalancePolicyKey, balancePolicyPrefer)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}
}

// GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

// GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

// GetNetwork ...
func GetNetwork() *network.Network {
	switch vip.GetString(NetworkKey) {
	case network.Regtest.Name:
		return &network.Regtest
	case network.Testnet.Name:
		return &network.Testnet
	default:
		return &network.Liquid
	}
}

// GetHTTPTimeout ...
func GetHTTPTimeout() time.Duration {
	return time.Duration(GetInt(HTTPTimeoutKey)) * time.Millisecond
}

// GetExplorer ...
func GetExplorer() (explorer.Service, error) {
	endpoint := GetString(ExplorerEndpointKey)
	reqTimeout := time.Duration(GetInt(ExplorerRequestTimeoutKey)) * time.Millisecond
	return esplora.NewService(endpoint, reqTimeout)
}

// GetBalancePolicy ...
func GetBalancePolicy() trade.BalancePolicy {
	switch vip.GetString(BalancePolicyKey) {
	case balancePolicyRequire:
		return trade.BalanceRequireSufficient
	case balancePolicyIgnore:
		return trade.BalanceIgnore
	default:
		return trade.BalancePreferSufficient
	}
}

// GetLogLevel ...
func GetLogLevel() log.Level {
	return log.Level(GetInt(LogLevelKey))
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the given key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

func validate() error {
	networkName := GetString(NetworkKey)
	if networkName != network.Liquid.Name &&
		networkName != network.Testnet.Name &&
		networkName != network.Regtest.Name {
		return fmt.Errorf(
			"network must be either '%s', '%s' or '%s'",
			network.Liquid.Name, network.Testnet.Name, network.Regtest.Name,
		)
	}

	explorerEndpoint := GetString(ExplorerEndpointKey)
	if _, err := url.Parse(explorerEndpoint); err != nil {
		return fmt.Errorf("explorer endpoint is not a valid url: %s", err)
	}

	if registryURL := GetString(RegistryURLKey); registryURL != "" {
		if _, err := url.Parse(registryURL); err != nil {
			return fmt.Errorf("registry url is not valid: %s", err)
		}
	}

	policy := GetString(BalancePolicyKey)
	if policy != balancePolicyPrefer &&
		policy != balancePolicyRequire &&
		policy != balancePolicyIgnore {
		return fmt.Errorf(
			"balance policy must be either '%s', '%s' or '%s'",
			balancePolicyPrefer, balancePolicyRequire, balancePolicyIgnore,
		)
	}

	return nil
}
