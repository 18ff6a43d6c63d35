package clients

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GeoClient resolves the caller's country from an IP geolocation service.
// It is only used to seed the display currency; callers treat any error as
// a signal to fall back to the default.
type GeoClient interface {
	CountryCode() (string, error)
}

// HTTPGeoClient is a GeoClient backed by a JSON-over-HTTP geolocation API.
type HTTPGeoClient struct {
	url    string
	client *http.Client
}

// NewHTTPGeoClient creates a new HTTPGeoClient for the given endpoint URL.
func NewHTTPGeoClient(url string) *HTTPGeoClient {
	return &HTTPGeoClient{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// CountryCode fetches the ISO country code for the caller's IP.
func (c *HTTPGeoClient) CountryCode() (string, error) {
	resp, err := c.client.Get(c.url)
	if err != nil {
		return "", fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geolocation service returned status %d", resp.StatusCode)
	}

	var body struct {
		CountryCode string `json:"country_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode geolocation response: %w", err)
	}
	if body.CountryCode == "" {
		return "", fmt.Errorf("geolocation response missing country code")
	}
	return body.CountryCode, nil
}
