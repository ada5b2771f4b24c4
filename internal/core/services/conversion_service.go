package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fxops/currency_management_app/internal/apperrors"
	"github.com/fxops/currency_management_app/internal/core/domain"
	"github.com/fxops/currency_management_app/internal/core/ports/quotes"
	portsrepo "github.com/fxops/currency_management_app/internal/core/ports/repositories"
	portssvc "github.com/fxops/currency_management_app/internal/core/ports/services"
	"github.com/fxops/currency_management_app/internal/dto"
	"github.com/fxops/currency_management_app/internal/metrics"
	"github.com/fxops/currency_management_app/internal/utils/mapping"
)

// RateCache is the lookup cache consulted before the upstream provider.
type RateCache interface {
	GetOrFetch(ctx context.Context, base, target string, fetch func(ctx context.Context) (domain.ExchangeRateQuote, error)) (domain.ExchangeRateQuote, error)
}

// ConversionService implements rate lookup, single conversion and history
// queries on top of the quote provider, the rate cache and the conversion
// repository.
type ConversionService struct {
	provider quotes.Provider
	cache    RateCache
	repo     portsrepo.ConversionRepositoryFacade
	metrics  *metrics.Metrics
	now      func() time.Time
}

// ConversionOption customizes a ConversionService.
type ConversionOption func(*ConversionService)

// WithConversionClock replaces the service's time source for tests.
func WithConversionClock(now func() time.Time) ConversionOption {
	return func(s *ConversionService) {
		s.now = now
	}
}

// NewConversionService creates a new ConversionService.
func NewConversionService(provider quotes.Provider, cache RateCache, repo portsrepo.ConversionRepositoryFacade, m *metrics.Metrics, opts ...ConversionOption) *ConversionService {
	s := &ConversionService{
		provider: provider,
		cache:    cache,
		repo:     repo,
		metrics:  m,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ConversionSvcFacade = (*ConversionService)(nil)

// GetExchangeRate returns the current rate for a pair. The lookup is served
// from the rate cache; a miss lazily calls the upstream provider. Nothing is
// persisted.
func (s *ConversionService) GetExchangeRate(ctx context.Context, req dto.ExchangeRateRequest) (*dto.ExchangeRateResponse, error) {
	base, target, err := validateSymbols(req.Base, req.Target)
	if err != nil {
		return nil, err
	}

	quote, err := s.cache.GetOrFetch(ctx, base, target, func(ctx context.Context) (domain.ExchangeRateQuote, error) {
		resp, err := s.provider.FetchExchangeRate(ctx, base, target)
		if err != nil {
			return domain.ExchangeRateQuote{}, err
		}
		return mapping.ToExchangeRateQuote(resp), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate for %s-%s: %w", base, target, err)
	}

	resp := dto.ToExchangeRateResponse(quote)
	return &resp, nil
}

// ConvertCurrency converts an amount with a point-in-time quote for that
// exact amount (never the cache) and persists the resulting audit record as
// one atomic write.
func (s *ConversionService) ConvertCurrency(ctx context.Context, req dto.CurrencyConversionRequest) (*dto.CurrencyConversionResponse, error) {
	base, target, err := validateSymbols(req.Base, req.Target)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.New(400, apperrors.CodeValidationError, "Amount must be greater than 0")
	}

	upstream, err := s.provider.ConvertCurrency(ctx, base, target, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s %s to %s: %w", req.Amount, base, target, err)
	}
	if !upstream.Success {
		return nil, apperrors.NewInternal(
			fmt.Sprintf("upstream conversion for %s/%s was unsuccessful", base, target), nil)
	}

	record := mapping.ToConversion(base, target, req.Amount, upstream, s.now())
	if err := s.repo.SaveConversion(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist conversion: %w", err)
	}
	if s.metrics != nil {
		s.metrics.ConversionsPersisted.Inc()
	}

	resp := dto.ToCurrencyConversionResponse(&record)
	return &resp, nil
}

// GetConversionHistory pages through the conversion audit history,
// dispatching on which filters are present.
func (s *ConversionService) GetConversionHistory(ctx context.Context, req dto.CurrencyHistoryRequest) (*dto.CurrencyHistoryPaginationResponse, error) {
	idPresent := req.TransactionID != nil && *req.TransactionID != ""
	datePresent := req.TransactionDate != nil && *req.TransactionDate != ""

	if !idPresent && !datePresent {
		return nil, apperrors.NewParameterRequired(
			"At least one of transactionId or transactionDate parameters is required for transaction history.")
	}

	var transactionDate time.Time
	if datePresent {
		parsed, err := time.Parse(dto.TransactionDateFormat, *req.TransactionDate)
		if err != nil {
			return nil, apperrors.NewInvalidDateFormat()
		}
		transactionDate = parsed
	}

	limit := req.PageSize
	offset := req.PageNumber * req.PageSize

	var (
		records     []domain.Conversion
		total       int64
		err         error
		notFoundMsg string
	)
	switch {
	case idPresent && datePresent:
		records, total, err = s.repo.FindByTransactionIDAndDate(ctx, *req.TransactionID, transactionDate, limit, offset)
		notFoundMsg = "Transaction Id/Date Not Found"
	case idPresent:
		records, total, err = s.repo.FindByTransactionID(ctx, *req.TransactionID, limit, offset)
		notFoundMsg = "Transaction Id Not Found: " + *req.TransactionID
	default:
		records, total, err = s.repo.FindByTransactionDate(ctx, transactionDate, limit, offset)
		notFoundMsg = "Transaction Date Not Found: " + *req.TransactionDate
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query conversion history: %w", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewHistoryNotFound(notFoundMsg)
	}

	resp := dto.ToCurrencyHistoryPaginationResponse(records, total, req.PageNumber, req.PageSize)
	return &resp, nil
}

// validateSymbols applies the shared presence and membership checks, then
// returns the uppercased pair.
func validateSymbols(base, target string) (string, string, error) {
	if base == "" || target == "" {
		return "", "", apperrors.NewNullCurrencySymbol(
			"Currency symbols can not be null. Please enter valid currency codes: " + domain.CurrencySymbolNames())
	}

	base = strings.ToUpper(base)
	target = strings.ToUpper(target)

	if err := validateSymbol(base, "base"); err != nil {
		return "", "", err
	}
	if err := validateSymbol(target, "target"); err != nil {
		return "", "", err
	}
	return base, target, nil
}

// validateSymbol checks one code against the closed currency set. Input is
// expected to be uppercased already.
func validateSymbol(symbol, field string) error {
	if !domain.IsValidCurrencySymbol(symbol) {
		return apperrors.NewInvalidCurrencySymbol(fmt.Sprintf(
			"Invalid %s currency symbol: %s. Valid currency codes: %s",
			field, symbol, domain.CurrencySymbolNames()))
	}
	return nil
}
