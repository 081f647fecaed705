package trade

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-trader/pkg/registry"
	trademarket "github.com/tdex-network/tdex-trader/pkg/trade/market"
	"golang.org/x/sync/errgroup"
)

// DefaultDiscoveryConcurrency bounds how many providers are queried at once
// during market discovery.
const DefaultDiscoveryConcurrency = 4

// DiscoverOpts is the struct given to DiscoverMarkets.
type DiscoverOpts struct {
	// Concurrency overrides DefaultDiscoveryConcurrency when positive.
	Concurrency int
	// SkipVersionProbe disables the protocol-version compatibility check
	// performed on each provider before fetching its markets.
	SkipVersionProbe bool
	// WithBalances also fetches each market's balance, needed by the
	// balance-aware ranking policies.
	WithBalances bool
}

// DiscoverMarkets enumerates the markets of the given providers, enriching
// each one with its current price and, optionally, its balance. Provider
// failures are isolated: a misbehaving provider is logged and skipped
// without aborting the discovery of the others. It returns ErrNoMarketsFound
// when no provider contributed any market.
func (t *Trade) DiscoverMarkets(
	ctx context.Context, providers []registry.Provider, opts DiscoverOpts,
) ([]trademarket.Market, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultDiscoveryConcurrency
	}

	var lock sync.Mutex
	markets := make([]trademarket.Market, 0)

	g := &errgroup.Group{}
	g.SetLimit(concurrency)
	for i := range providers {
		provider := providers[i]
		g.Go(func() error {
			discovered := t.discoverProviderMarkets(ctx, provider, opts)
			if len(discovered) <= 0 {
				return nil
			}
			lock.Lock()
			defer lock.Unlock()
			markets = append(markets, discovered...)
			return nil
		})
	}
	// Workers never return errors, failures are logged and swallowed.
	g.Wait() // nolint

	if len(markets) <= 0 {
		return nil, ErrNoMarketsFound
	}
	return markets, nil
}

func (t *Trade) discoverProviderMarkets(
	ctx context.Context, provider registry.Provider, opts DiscoverOpts,
) []trademarket.Market {
	logger := log.WithField("provider", provider.Name)

	client, err := t.client(provider.Endpoint)
	if err != nil {
		logger.WithError(err).Warn("skipping provider with invalid endpoint")
		return nil
	}

	if !opts.SkipVersionProbe {
		if err := client.Probe(ctx); err != nil {
			logger.WithError(err).Warn("skipping incompatible provider")
			return nil
		}
	}

	markets, err := client.ListMarkets(ctx, provider)
	if err != nil {
		logger.WithError(err).Warn("failed to fetch provider markets")
		return nil
	}

	for i := range markets {
		price, err := client.MarketPrice(ctx, markets[i])
		if err != nil {
			// An unpriced market is still tradable, it just cannot win a
			// price ranking.
			logger.WithError(err).Debug("failed to fetch market price")
		} else {
			markets[i].Price = price
		}

		if opts.WithBalances {
			balance, err := client.MarketBalance(ctx, markets[i])
			if err != nil {
				logger.WithError(err).Debug("failed to fetch market balance")
			} else {
				markets[i].Balance = balance
			}
		}
	}
	return markets
}
