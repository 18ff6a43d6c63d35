package models

// CurrencyInfo describes a display currency. The set of known currencies is
// a fixed table; only the user's selection changes between sessions.
type CurrencyInfo struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
