package tradeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tdex-network/tdex-trader/pkg/circuitbreaker"
)

const apiPrefix = "/v2"

// DefaultTimeout is the timeout applied to every provider call when no
// custom one is given.
const DefaultTimeout = 15 * time.Second

var (
	// ErrInvalidEndpoint ...
	ErrInvalidEndpoint = errors.New(
		"provider endpoint must be a valid http(s) url",
	)
	// ErrInvalidProviderResponse ...
	ErrInvalidProviderResponse = errors.New(
		"provider returned a malformed response",
	)
)

// ProviderError is a typed error returned by a provider endpoint.
type ProviderError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}

// Client calls the JSON API of a single provider endpoint. Outbound calls go
// through a circuit breaker so that a repeatedly failing provider is cut off
// instead of being hammered.
type Client struct {
	endpoint   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient returns a new Client for the provider at the given endpoint.
func NewClient(endpoint string) (*Client, error) {
	return NewClientWithTimeout(endpoint, DefaultTimeout)
}

// NewClientWithTimeout returns a new Client with a custom per-call timeout.
func NewClientWithTimeout(endpoint string, timeout time.Duration) (*Client, error) {
	if _, err := url.ParseRequestURI(endpoint); err != nil ||
		!strings.HasPrefix(endpoint, "http") {
		return nil, ErrInvalidEndpoint
	}

	return &Client{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker:    circuitbreaker.NewCircuitBreaker(endpoint),
	}, nil
}

// Endpoint returns the provider endpoint the client is connected to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Probe checks that the provider speaks the expected protocol version by
// hitting the versioned markets endpoint and only looking at the status code.
func (c *Client) Probe(ctx context.Context) error {
	var out json.RawMessage
	return c.post(ctx, "/markets", struct{}{}, &out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	url := c.endpoint + apiPrefix + path
	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doPost(ctx, url, payload)
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(res.([]byte), out); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidProviderResponse, err)
	}
	return nil
}

func (c *Client) doPost(ctx context.Context, url string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, url, bytes.NewReader(payload),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		provErr := &ProviderError{}
		if err := json.Unmarshal(resBody, provErr); err != nil || len(provErr.Message) <= 0 {
			return nil, fmt.Errorf(
				"provider returned status %d", res.StatusCode,
			)
		}
		return nil, provErr
	}

	return resBody, nil
}
