package services

import (
	"context"

	"github.com/fxops/currency_management_app/internal/dto"
)

// ConversionSvcFacade exposes rate lookup, single conversion and history
// queries to the transport layer.
type ConversionSvcFacade interface {
	// GetExchangeRate returns the current rate for a pair, served from the
	// rate cache when a live entry exists.
	GetExchangeRate(ctx context.Context, req dto.ExchangeRateRequest) (*dto.ExchangeRateResponse, error)

	// ConvertCurrency converts an amount with a point-in-time quote and
	// persists the resulting audit record.
	ConvertCurrency(ctx context.Context, req dto.CurrencyConversionRequest) (*dto.CurrencyConversionResponse, error)

	// GetConversionHistory pages through the conversion audit history.
	GetConversionHistory(ctx context.Context, req dto.CurrencyHistoryRequest) (*dto.CurrencyHistoryPaginationResponse, error)
}

// BulkConversionSvcFacade exposes the CSV batch pipeline.
type BulkConversionSvcFacade interface {
	// ProcessBulkConversions runs a batch file of conversion requests
	// sequentially inside one persistence transaction.
	ProcessBulkConversions(ctx context.Context, file []byte, fileName string) ([]dto.CurrencyConversionResponse, error)
}

// ServiceContainer bundles the service facades handed to route registration.
type ServiceContainer struct {
	Conversion ConversionSvcFacade
	Bulk       BulkConversionSvcFacade
}
