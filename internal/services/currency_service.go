package services

import (
	"fmt"
	"log"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"hadiah/internal/clients"
	"hadiah/internal/models"
	"hadiah/internal/prefs"
)

// currencies is the fixed table of currencies the storefront can display.
var currencies = map[string]models.CurrencyInfo{
	"INR": {Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	"USD": {Code: "USD", Symbol: "$", Name: "US Dollar"},
	"EUR": {Code: "EUR", Symbol: "€", Name: "Euro"},
	"GBP": {Code: "GBP", Symbol: "£", Name: "British Pound"},
	"AED": {Code: "AED", Symbol: "د.إ", Name: "UAE Dirham"},
	"AUD": {Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	"CAD": {Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	"SGD": {Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
}

// countryCurrency maps ISO country codes to display currencies. The mapping
// is many-to-one; unmapped countries fall back to the default currency.
var countryCurrency = map[string]string{
	"IN": "INR",
	"US": "USD",
	"GB": "GBP",
	"AE": "AED",
	"AU": "AUD",
	"CA": "CAD",
	"SG": "SGD",
	"DE": "EUR",
	"FR": "EUR",
	"IT": "EUR",
	"ES": "EUR",
	"NL": "EUR",
	"IE": "EUR",
}

const prefKeyCurrency = "currency"

// CurrencyService resolves and formats the display currency. Amounts are
// assumed to already be denominated in the selected currency; no exchange
// rate conversion happens here.
type CurrencyService struct {
	prefs       *prefs.Store
	geo         clients.GeoClient
	defaultCode string
}

// NewCurrencyService creates a new CurrencyService. An unknown defaultCode
// is replaced with INR.
func NewCurrencyService(prefStore *prefs.Store, geo clients.GeoClient, defaultCode string) *CurrencyService {
	if _, ok := currencies[defaultCode]; !ok {
		defaultCode = "INR"
	}
	return &CurrencyService{
		prefs:       prefStore,
		geo:         geo,
		defaultCode: defaultCode,
	}
}

// Detect resolves the display currency: stored preference first, then IP
// geolocation mapped through the country table, then the default. A failed
// geolocation call is logged and falls back silently.
func (s *CurrencyService) Detect() models.CurrencyInfo {
	if code, ok := s.prefs.Get(prefKeyCurrency); ok {
		if info, known := currencies[code]; known {
			return info
		}
	}

	if s.geo != nil {
		country, err := s.geo.CountryCode()
		if err != nil {
			log.Printf("Geolocation lookup failed, using default currency: %v", err)
			return currencies[s.defaultCode]
		}
		if code, ok := countryCurrency[strings.ToUpper(country)]; ok {
			return currencies[code]
		}
	}

	return currencies[s.defaultCode]
}

// ChangeCurrency selects a currency by code and persists the selection for
// future sessions. Unknown codes fall back to the default currency.
func (s *CurrencyService) ChangeCurrency(code string) models.CurrencyInfo {
	info, ok := currencies[strings.ToUpper(code)]
	if !ok {
		info = currencies[s.defaultCode]
	}
	if err := s.prefs.Set(prefKeyCurrency, info.Code); err != nil {
		log.Printf("Failed to persist currency preference: %v", err)
	}
	return info
}

// Format renders an amount with locale-aware formatting for the currently
// detected currency.
func (s *CurrencyService) Format(amount float64) string {
	info := s.Detect()
	unit, err := currency.ParseISO(info.Code)
	if err != nil {
		return fmt.Sprintf("%s%.2f", info.Symbol, amount)
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("%v", currency.NarrowSymbol(unit.Amount(amount)))
}
