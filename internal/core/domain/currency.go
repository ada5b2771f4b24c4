package domain

import "strings"

// CurrencySymbol is a supported currency code. The set is closed and known
// at build time; extending it requires a rebuild, not a runtime registry.
type CurrencySymbol string

const (
	USD CurrencySymbol = "USD"
	EUR CurrencySymbol = "EUR"
	GBP CurrencySymbol = "GBP"
	TRY CurrencySymbol = "TRY"
	JPY CurrencySymbol = "JPY"
	CHF CurrencySymbol = "CHF"
	CAD CurrencySymbol = "CAD"
	AUD CurrencySymbol = "AUD"
)

// currencySymbols is ordered for stable error messages.
var currencySymbols = []CurrencySymbol{USD, EUR, GBP, TRY, JPY, CHF, CAD, AUD}

var currencySymbolSet = func() map[CurrencySymbol]struct{} {
	set := make(map[CurrencySymbol]struct{}, len(currencySymbols))
	for _, s := range currencySymbols {
		set[s] = struct{}{}
	}
	return set
}()

// IsValidCurrencySymbol reports whether code is a member of the supported
// currency set. The check is case-sensitive; callers uppercase first.
func IsValidCurrencySymbol(code string) bool {
	_, ok := currencySymbolSet[CurrencySymbol(code)]
	return ok
}

// CurrencySymbolNames returns the supported set formatted for error
// messages, e.g. "[USD, EUR, GBP, TRY, JPY, CHF, CAD, AUD]".
func CurrencySymbolNames() string {
	names := make([]string, len(currencySymbols))
	for i, s := range currencySymbols {
		names[i] = string(s)
	}
	return "[" + strings.Join(names, ", ") + "]"
}
