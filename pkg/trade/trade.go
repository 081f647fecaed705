package trade

import (
	"errors"
	"sync"
	"time"

	tradeclient "github.com/tdex-network/tdex-trader/pkg/trade/client"
)

var (
	// ErrNullWallet ...
	ErrNullWallet = errors.New("wallet must not be null")
)

// Trade drives swaps against liquidity providers: it discovers and ranks
// markets, negotiates the three-phase swap protocol and hands transactions
// to the wallet collaborator for signing. It holds no state across trade
// attempts.
type Trade struct {
	wallet      Wallet
	httpTimeout time.Duration

	lock    sync.Mutex
	clients map[string]*tradeclient.Client
}

// NewTradeOpts is the struct given to the NewTrade method.
type NewTradeOpts struct {
	Wallet Wallet
	// HTTPTimeout is applied to every provider call, defaulting to the
	// client package's DefaultTimeout when left unset.
	HTTPTimeout time.Duration
}

func (o NewTradeOpts) validate() error {
	if o.Wallet == nil {
		return ErrNullWallet
	}
	return nil
}

// NewTrade returns a new Trade initialized with the given collaborators.
func NewTrade(opts NewTradeOpts) (*Trade, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	timeout := opts.HTTPTimeout
	if timeout <= 0 {
		timeout = tradeclient.DefaultTimeout
	}

	return &Trade{
		wallet:      opts.Wallet,
		httpTimeout: timeout,
		clients:     map[string]*tradeclient.Client{},
	}, nil
}

// client returns the cached client of the given provider endpoint, so that
// its circuit breaker state survives across calls.
func (t *Trade) client(endpoint string) (*tradeclient.Client, error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if client, ok := t.clients[endpoint]; ok {
		return client, nil
	}
	client, err := tradeclient.NewClientWithTimeout(endpoint, t.httpTimeout)
	if err != nil {
		return nil, err
	}
	t.clients[endpoint] = client
	return client, nil
}
