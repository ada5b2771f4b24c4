package dto

import (
	"time"

	"github.com/fxops/currency_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionDateFormat is the wire format for calendar dates.
const TransactionDateFormat = "2006-01-02"

// ExchangeRateRequest asks for the current rate of a currency pair.
type ExchangeRateRequest struct {
	Base   string `json:"base"`
	Target string `json:"target"`
}

// ExchangeRateResponse carries the quoted rate for a pair.
type ExchangeRateResponse struct {
	BaseCurrency   string          `json:"baseCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
}

// CurrencyConversionRequest asks to convert an amount between two currencies.
// Presence and positivity are enforced in the service so the conversion and
// bulk flows classify failures identically.
type CurrencyConversionRequest struct {
	Base   string          `json:"base"`
	Target string          `json:"target"`
	Amount decimal.Decimal `json:"amount"`
}

// CurrencyConversionResponse is the persisted outcome of one conversion.
type CurrencyConversionResponse struct {
	BaseCurrency    string          `json:"baseCurrency"`
	TargetCurrency  string          `json:"targetCurrency"`
	Amount          decimal.Decimal `json:"amount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	TransactionID   string          `json:"transactionId"`
	TransactionDate string          `json:"transactionDate"`
}

// ToCurrencyConversionResponse converts a domain.Conversion to its DTO.
func ToCurrencyConversionResponse(c *domain.Conversion) CurrencyConversionResponse {
	return CurrencyConversionResponse{
		BaseCurrency:    c.BaseCurrency,
		TargetCurrency:  c.TargetCurrency,
		Amount:          c.Amount,
		ConvertedAmount: c.ConvertedAmount,
		ExchangeRate:    c.ExchangeRate,
		TransactionID:   c.TransactionID,
		TransactionDate: c.TransactionDate.Format(TransactionDateFormat),
	}
}

// ToExchangeRateResponse converts a domain quote to its DTO.
func ToExchangeRateResponse(q domain.ExchangeRateQuote) ExchangeRateResponse {
	return ExchangeRateResponse{
		BaseCurrency:   q.BaseCurrency,
		TargetCurrency: q.TargetCurrency,
		ExchangeRate:   q.ExchangeRate,
	}
}

// FormatTransactionDate renders a calendar date in the wire format.
func FormatTransactionDate(t time.Time) string {
	return t.Format(TransactionDateFormat)
}
