package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced in API error bodies.
const (
	CodeNullCurrencySymbol      = "NULL_CURRENCY_SYMBOL"
	CodeInvalidCurrencySymbol   = "INVALID_CURRENCY_SYMBOL"
	CodeParameterRequired       = "TRANSACTION_PARAMETER_REQUIRED"
	CodeHistoryNotFound         = "TRANSACTION_HISTORY_NOT_FOUND"
	CodeInvalidDateFormat       = "INVALID_DATE_FORMAT"
	CodeValidationError         = "VALIDATION_ERROR"
	CodeFileUpload              = "FILE_UPLOAD_ERROR"
	CodeInvalidRequest          = "INVALID_REQUEST"
	CodeInvalidAmount           = "INVALID_AMOUNT"
	CodeNoSuccessfulConversions = "NO_SUCCESSFUL_CONVERSIONS"
	CodeInternal                = "INTERNAL_ERROR"
)

// AppError is the error value returned by services for every classified
// failure. Handlers map it onto the structured error response body.
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code so callers can use errors.Is with the
// constructor templates below.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if errors.As(target, &appErr) {
		return e.Code == appErr.Code
	}
	return false
}

// New creates an AppError with an explicit status and code.
func New(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

// NewNullCurrencySymbol reports an absent base or target currency field.
func NewNullCurrencySymbol(message string) *AppError {
	return New(http.StatusBadRequest, CodeNullCurrencySymbol, message)
}

// NewInvalidCurrencySymbol reports a code outside the supported currency set.
func NewInvalidCurrencySymbol(message string) *AppError {
	return New(http.StatusBadRequest, CodeInvalidCurrencySymbol, message)
}

// NewParameterRequired reports a history query with no usable filter.
func NewParameterRequired(message string) *AppError {
	return New(http.StatusBadRequest, CodeParameterRequired, message)
}

// NewHistoryNotFound reports a valid history query that matched nothing.
func NewHistoryNotFound(message string) *AppError {
	return New(http.StatusNotFound, CodeHistoryNotFound, message)
}

// NewInvalidDateFormat reports a date field that failed the yyyy-MM-dd parse.
func NewInvalidDateFormat() *AppError {
	return New(http.StatusBadRequest, CodeInvalidDateFormat,
		"Invalid date format. Please use yyyy-MM-dd format (e.g., 2025-06-24)")
}

// NewFileUpload reports a missing, empty, mis-named or unparsable batch file.
func NewFileUpload(message string) *AppError {
	return New(http.StatusBadRequest, CodeFileUpload, message)
}

// NewInvalidRequest reports a bulk row with a missing base or target field.
// It aborts the whole batch.
func NewInvalidRequest(base, target string, amount string) *AppError {
	return New(http.StatusBadRequest, CodeInvalidRequest,
		fmt.Sprintf("Invalid request parameters. Base: %s, Target: %s, Amount: %s", base, target, amount))
}

// NewInvalidAmount reports a non-positive amount in a bulk row. It aborts
// the whole batch.
func NewInvalidAmount(base, target string, amount string) *AppError {
	return New(http.StatusBadRequest, CodeInvalidAmount,
		fmt.Sprintf("Invalid amount: %s for conversion %s/%s", amount, base, target))
}

// NewNoSuccessfulConversions reports a batch whose every row was skipped.
func NewNoSuccessfulConversions() *AppError {
	return New(http.StatusBadRequest, CodeNoSuccessfulConversions, "No successful conversions found")
}

// NewInternal wraps an unclassified failure.
func NewInternal(message string, err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: message, Err: err}
}

// AsAppError extracts an AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}
