package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conversion is one persisted currency conversion. Records are written once
// at the moment a successful upstream quote is obtained and never updated.
type Conversion struct {
	ConversionID    string          `json:"conversionID"`
	BaseCurrency    string          `json:"baseCurrency"`
	TargetCurrency  string          `json:"targetCurrency"`
	Amount          decimal.Decimal `json:"amount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	TransactionID   string          `json:"transactionID"`
	TransactionDate time.Time       `json:"transactionDate"`
}

// ExchangeRateQuote is the answer to "what is the rate base->target". It is
// the value cached by the rate cache.
type ExchangeRateQuote struct {
	BaseCurrency   string          `json:"baseCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
}
