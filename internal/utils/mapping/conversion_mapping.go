package mapping

import (
	"time"

	"github.com/fxops/currency_management_app/internal/core/domain"
	"github.com/fxops/currency_management_app/internal/core/ports/quotes"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ToExchangeRateQuote converts an upstream rate lookup into a domain quote.
// The quote map holds a single pair key like "USDEUR"; the target code is
// the last three characters.
func ToExchangeRateQuote(resp *quotes.RateLookupResponse) domain.ExchangeRateQuote {
	quote := domain.ExchangeRateQuote{
		BaseCurrency: resp.Source,
	}
	for key, rate := range resp.Quotes {
		if len(key) >= 3 {
			quote.TargetCurrency = key[len(key)-3:]
		}
		quote.ExchangeRate = rate
		break
	}
	return quote
}

// ToConversion builds a new audit record from a successful upstream convert
// response. Base, target and amount come from the request; the transaction
// ID is freshly generated and the transaction date is today.
func ToConversion(base, target string, amount decimal.Decimal, resp *quotes.ConversionResponse, now time.Time) domain.Conversion {
	year, month, day := now.Date()
	return domain.Conversion{
		BaseCurrency:    base,
		TargetCurrency:  target,
		Amount:          amount,
		ConvertedAmount: resp.Result,
		ExchangeRate:    resp.Info.Quote,
		TransactionID:   uuid.NewString(),
		TransactionDate: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
	}
}
