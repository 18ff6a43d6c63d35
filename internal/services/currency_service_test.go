package services

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"hadiah/internal/prefs"
)

// stubGeoClient returns a fixed country code or error.
type stubGeoClient struct {
	country string
	err     error
}

func (s *stubGeoClient) CountryCode() (string, error) {
	return s.country, s.err
}

func newTestPrefs(t *testing.T) *prefs.Store {
	t.Helper()
	store := prefs.NewStore(filepath.Join(t.TempDir(), "prefs.json"))
	assert.NoError(t, store.Load())
	return store
}

func TestDetectUsesStoredPreference(t *testing.T) {
	store := newTestPrefs(t)
	assert.NoError(t, store.Set("currency", "USD"))

	service := NewCurrencyService(store, &stubGeoClient{country: "GB"}, "INR")

	info := service.Detect()
	assert.Equal(t, "USD", info.Code)
}

func TestDetectMapsCountryToCurrency(t *testing.T) {
	service := NewCurrencyService(newTestPrefs(t), &stubGeoClient{country: "GB"}, "INR")

	info := service.Detect()
	assert.Equal(t, "GBP", info.Code)
	assert.Equal(t, "£", info.Symbol)
}

func TestDetectLowercaseCountry(t *testing.T) {
	service := NewCurrencyService(newTestPrefs(t), &stubGeoClient{country: "de"}, "INR")

	info := service.Detect()
	assert.Equal(t, "EUR", info.Code)
}

func TestDetectUnmappedCountryFallsBack(t *testing.T) {
	service := NewCurrencyService(newTestPrefs(t), &stubGeoClient{country: "BR"}, "INR")

	info := service.Detect()
	assert.Equal(t, "INR", info.Code)
}

func TestDetectGeoFailureFallsBack(t *testing.T) {
	geo := &stubGeoClient{err: errors.New("lookup timed out")}
	service := NewCurrencyService(newTestPrefs(t), geo, "INR")

	info := service.Detect()
	assert.Equal(t, "INR", info.Code)
}

func TestDetectNilGeoFallsBack(t *testing.T) {
	service := NewCurrencyService(newTestPrefs(t), nil, "INR")

	info := service.Detect()
	assert.Equal(t, "INR", info.Code)
}

func TestChangeCurrencyPersists(t *testing.T) {
	store := newTestPrefs(t)
	service := NewCurrencyService(store, &stubGeoClient{country: "US"}, "INR")

	info := service.ChangeCurrency("eur")
	assert.Equal(t, "EUR", info.Code)

	// The stored preference must now win over geolocation.
	info = service.Detect()
	assert.Equal(t, "EUR", info.Code)

	stored, ok := store.Get("currency")
	assert.True(t, ok)
	assert.Equal(t, "EUR", stored)
}

func TestChangeCurrencyUnknownCodeFallsBack(t *testing.T) {
	service := NewCurrencyService(newTestPrefs(t), nil, "INR")

	info := service.ChangeCurrency("XYZ")
	assert.Equal(t, "INR", info.Code)
}

func TestUnknownDefaultCodeBecomesINR(t *testing.T) {
	service := NewCurrencyService(newTestPrefs(t), nil, "ZZZ")

	info := service.Detect()
	assert.Equal(t, "INR", info.Code)
}

func TestFormatUsesDetectedCurrency(t *testing.T) {
	store := newTestPrefs(t)
	assert.NoError(t, store.Set("currency", "INR"))
	service := NewCurrencyService(store, nil, "INR")

	formatted := service.Format(1299.50)
	assert.Contains(t, formatted, "₹")
	assert.Contains(t, formatted, "1,299.50")
}

func TestFormatDollar(t *testing.T) {
	store := newTestPrefs(t)
	assert.NoError(t, store.Set("currency", "USD"))
	service := NewCurrencyService(store, nil, "INR")

	formatted := service.Format(49.99)
	assert.Contains(t, formatted, "$")
	assert.Contains(t, formatted, "49.99")
}
