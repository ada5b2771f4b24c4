package quotes

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateLookupResponse is the upstream answer to a live rate lookup. Quotes is
// keyed by the concatenated pair, e.g. "USDEUR"; the target currency is
// recovered from the last three characters of the key.
type RateLookupResponse struct {
	Success bool                       `json:"success"`
	Source  string                     `json:"source"`
	Quotes  map[string]decimal.Decimal `json:"quotes"`
}

// ConversionQuery echoes the requested conversion.
type ConversionQuery struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// ConversionInfo carries the point-in-time quote used for a conversion.
type ConversionInfo struct {
	Timestamp int64           `json:"timestamp"`
	Quote     decimal.Decimal `json:"quote"`
}

// ConversionResponse is the upstream answer to a convert call.
type ConversionResponse struct {
	Success bool            `json:"success"`
	Query   ConversionQuery `json:"query"`
	Info    ConversionInfo  `json:"info"`
	Result  decimal.Decimal `json:"result"`
}

// Provider is the upstream quote provider collaborator. Implementations own
// transport concerns (auth key, timeouts); retries, if any, belong there too.
type Provider interface {
	// FetchExchangeRate performs a live rate lookup for source->target.
	FetchExchangeRate(ctx context.Context, source, target string) (*RateLookupResponse, error)

	// ConvertCurrency obtains a point-in-time quote and converted amount for
	// the exact amount given.
	ConvertCurrency(ctx context.Context, from, to string, amount decimal.Decimal) (*ConversionResponse, error)
}
