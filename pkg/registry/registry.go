package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vulpemventures/go-elements/network"
)

const (
	liquidRegistryURL  = "https://raw.githubusercontent.com/tdex-network/tdex-registry/master/registry.json"
	testnetRegistryURL = "https://raw.githubusercontent.com/tdex-network/tdex-registry/testnet/registry.json"
)

var (
	// ErrRegistryUnavailable ...
	ErrRegistryUnavailable = errors.New(
		"registry is unreachable or returned a malformed payload",
	)
	// ErrNoProvidersFound ...
	ErrNoProvidersFound = errors.New("no provider found in registry")
)

var httpClient = &http.Client{Timeout: 15 * time.Second}

// Provider is a liquidity provider listed in the registry.
type Provider struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
}

// Validate checks whether the current provider record is well-formed.
func (p Provider) Validate() error {
	if len(p.Name) <= 0 {
		return fmt.Errorf("provider name must not be null")
	}
	if _, err := url.ParseRequestURI(p.Endpoint); err != nil ||
		!strings.HasPrefix(p.Endpoint, "http") {
		return fmt.Errorf("provider endpoint must be a valid http(s) url")
	}
	return nil
}

// URLForNetwork returns the registry url of the given network, defaulting to
// the mainnet one for unknown networks.
func URLForNetwork(net string) string {
	if net == network.Testnet.Name {
		return testnetRegistryURL
	}
	return liquidRegistryURL
}

// FetchProviders fetches the list of registered providers from the given
// registry url. Records with a malformed shape are skipped, while a payload
// that is not a JSON array makes the whole fetch fail.
func FetchProviders(ctx context.Context, registryURL string) ([]Provider, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, registryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRegistryUnavailable, err)
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRegistryUnavailable, err)
	}
	defer res.Body.Close()

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRegistryUnavailable, err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"%w: status %d", ErrRegistryUnavailable, res.StatusCode,
		)
	}

	return parseProviders(body)
}

func parseProviders(body []byte) ([]Provider, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf(
			"%w: payload is not a JSON array", ErrRegistryUnavailable,
		)
	}

	providers := make([]Provider, 0, len(records))
	for _, record := range records {
		var provider Provider
		if err := json.Unmarshal(record, &provider); err != nil {
			continue
		}
		if err := provider.Validate(); err != nil {
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) <= 0 {
		return nil, ErrNoProvidersFound
	}
	return providers, nil
}
