package clients

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

// ErrPostalNotFound is returned when the lookup service has no record for
// the given postal code.
var ErrPostalNotFound = errors.New("postal code not found")

// ErrInvalidPostalCode is returned for codes that are not 6 digits.
var ErrInvalidPostalCode = errors.New("postal code must be 6 digits")

var pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// PostalInfo is the city and state derived from a postal code.
type PostalInfo struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// PostalClient looks up city and state for a 6-digit postal code.
type PostalClient interface {
	Lookup(pincode string) (*PostalInfo, error)
}

// HTTPPostalClient is a PostalClient backed by the public pincode API.
type HTTPPostalClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPPostalClient creates a new HTTPPostalClient for the given base URL.
func NewHTTPPostalClient(baseURL string) *HTTPPostalClient {
	return &HTTPPostalClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup fetches the city and state for pincode. The upstream API answers
// with an array of result envelopes; only the first is consulted.
func (c *HTTPPostalClient) Lookup(pincode string) (*PostalInfo, error) {
	if !pincodePattern.MatchString(pincode) {
		return nil, ErrInvalidPostalCode
	}

	resp, err := c.client.Get(fmt.Sprintf("%s/pincode/%s", c.baseURL, pincode))
	if err != nil {
		return nil, fmt.Errorf("postal lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("postal lookup service returned status %d", resp.StatusCode)
	}

	var body []struct {
		Status     string `json:"Status"`
		PostOffice []struct {
			District string `json:"District"`
			State    string `json:"State"`
		} `json:"PostOffice"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode postal lookup response: %w", err)
	}
	if len(body) == 0 || body[0].Status != "Success" || len(body[0].PostOffice) == 0 {
		return nil, ErrPostalNotFound
	}

	return &PostalInfo{
		City:  body[0].PostOffice[0].District,
		State: body[0].PostOffice[0].State,
	}, nil
}
