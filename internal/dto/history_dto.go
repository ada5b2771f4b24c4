package dto

import (
	"github.com/fxops/currency_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyHistoryRequest filters the conversion audit history. At least one
// of TransactionID / TransactionDate must be present; the service enforces
// this so the error is classified as TRANSACTION_PARAMETER_REQUIRED rather
// than a generic binding failure.
type CurrencyHistoryRequest struct {
	TransactionID   *string `json:"transactionId"`
	TransactionDate *string `json:"transactionDate"` // yyyy-MM-dd
	PageNumber      int     `json:"pageNumber" binding:"min=0"`
	PageSize        int     `json:"pageSize" binding:"required,min=1"`
}

// CurrencyHistoryResponse is one audit record in a history page.
type CurrencyHistoryResponse struct {
	ConversionID    string          `json:"conversionID"`
	BaseCurrency    string          `json:"baseCurrency"`
	TargetCurrency  string          `json:"targetCurrency"`
	Amount          decimal.Decimal `json:"amount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	TransactionID   string          `json:"transactionId"`
	TransactionDate string          `json:"transactionDate"`
}

// CurrencyHistoryPaginationResponse is one page of audit history.
type CurrencyHistoryPaginationResponse struct {
	Entries          []CurrencyHistoryResponse `json:"entries"`
	TotalValue       int64                     `json:"totalValue"`
	TotalPages       int64                     `json:"totalPages"`
	CurrentPage      int                       `json:"currentPage"`
	ViewedValueCount int                       `json:"viewedValueCount"`
}

// ToCurrencyHistoryResponse converts a domain.Conversion to a history entry.
func ToCurrencyHistoryResponse(c domain.Conversion) CurrencyHistoryResponse {
	return CurrencyHistoryResponse{
		ConversionID:    c.ConversionID,
		BaseCurrency:    c.BaseCurrency,
		TargetCurrency:  c.TargetCurrency,
		Amount:          c.Amount,
		ConvertedAmount: c.ConvertedAmount,
		ExchangeRate:    c.ExchangeRate,
		TransactionID:   c.TransactionID,
		TransactionDate: c.TransactionDate.Format(TransactionDateFormat),
	}
}

// ToCurrencyHistoryPaginationResponse assembles a history page from the
// record page, the filter's total match count and the requested window.
func ToCurrencyHistoryPaginationResponse(records []domain.Conversion, total int64, pageNumber, pageSize int) CurrencyHistoryPaginationResponse {
	entries := make([]CurrencyHistoryResponse, len(records))
	for i, rec := range records {
		entries[i] = ToCurrencyHistoryResponse(rec)
	}
	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}
	return CurrencyHistoryPaginationResponse{
		Entries:          entries,
		TotalValue:       total,
		TotalPages:       totalPages,
		CurrentPage:      pageNumber,
		ViewedValueCount: pageSize,
	}
}
