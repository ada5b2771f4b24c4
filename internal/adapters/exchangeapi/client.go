package exchangeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/fxops/currency_management_app/internal/core/ports/quotes"
	"github.com/fxops/currency_management_app/internal/metrics"
	"github.com/shopspring/decimal"
)

// Client consumes the currencylayer-style quote provider API. It implements
// the quotes.Provider port; retries are deliberately not performed here.
type Client struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a Client for the given API base URL and access key.
func NewClient(baseURL, accessKey string, logger *slog.Logger, m *metrics.Metrics) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:   baseURL,
		accessKey: accessKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:  logger,
		metrics: m,
	}
}

var _ quotes.Provider = (*Client)(nil)

// FetchExchangeRate performs a live rate lookup for source->target. An
// unsuccessful upstream answer is returned as an error so callers (and the
// rate cache in particular) never treat it as a quotable result.
func (c *Client) FetchExchangeRate(ctx context.Context, source, target string) (*quotes.RateLookupResponse, error) {
	params := url.Values{}
	params.Set("access_key", c.accessKey)
	params.Set("source", source)
	params.Set("currencies", target)

	var response quotes.RateLookupResponse
	if err := c.get(ctx, "/live", params, &response); err != nil {
		return nil, err
	}
	if c.metrics != nil {
		c.metrics.UpstreamCallsTotal.WithLabelValues("live").Inc()
	}
	if !response.Success {
		c.logger.Warn("upstream rate lookup unsuccessful",
			slog.String("source", source), slog.String("target", target))
		return nil, fmt.Errorf("upstream rate lookup for %s-%s was unsuccessful", source, target)
	}
	if len(response.Quotes) == 0 {
		return nil, fmt.Errorf("upstream rate lookup for %s-%s returned no quotes", source, target)
	}
	return &response, nil
}

// ConvertCurrency obtains a point-in-time quote and converted amount. The
// decoded response is returned even when the upstream reports failure,
// because the bulk pipeline classifies unusable responses itself.
func (c *Client) ConvertCurrency(ctx context.Context, from, to string, amount decimal.Decimal) (*quotes.ConversionResponse, error) {
	params := url.Values{}
	params.Set("access_key", c.accessKey)
	params.Set("from", from)
	params.Set("to", to)
	params.Set("amount", amount.String())

	var response quotes.ConversionResponse
	if err := c.get(ctx, "/convert", params, &response); err != nil {
		return nil, err
	}
	if c.metrics != nil {
		c.metrics.UpstreamCallsTotal.WithLabelValues("convert").Inc()
	}
	return &response, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}
	return nil
}
