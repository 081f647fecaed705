// Package esplora implements the explorer.Service interface against the HTTP
// API of an esplora instance (blockstream.info and compatibles).
package esplora

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tdex-network/tdex-trader/pkg/explorer"
)

// DefaultTimeout is the timeout applied to esplora requests when none is
// given to NewService.
const DefaultTimeout = 15 * time.Second

type esplora struct {
	apiURL     string
	httpClient *http.Client
}

// NewService returns an explorer.Service backed by the esplora instance
// reachable at the given URL. The service performs a health check before
// being returned.
func NewService(apiURL string, timeout time.Duration) (explorer.Service, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	service := &esplora{
		apiURL:     strings.TrimSuffix(apiURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}

	if err := service.healthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	return service, nil
}

func (e *esplora) healthCheck(ctx context.Context) error {
	_, err := e.get(ctx, "/blocks/tip/height")
	return err
}

func (e *esplora) get(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, e.apiURL+path, nil,
	)
	if err != nil {
		return "", err
	}
	return e.do(req)
}

func (e *esplora) post(
	ctx context.Context, path, contentType, body string,
) (string, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, e.apiURL+path, strings.NewReader(body),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	return e.do(req)
}

func (e *esplora) do(req *http.Request) (string, error) {
	res, err := e.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"explorer returned status %d: %s",
			res.StatusCode, strings.TrimSpace(string(body)),
		)
	}
	return string(body), nil
}
