package clients

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pincode/560001", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"Status":"Success","PostOffice":[{"District":"Bengaluru","State":"Karnataka"}]}]`))
	}))
	defer server.Close()

	client := NewHTTPPostalClient(server.URL)
	info, err := client.Lookup("560001")
	assert.NoError(t, err)
	assert.Equal(t, "Bengaluru", info.City)
	assert.Equal(t, "Karnataka", info.State)
}

func TestLookupInvalidCode(t *testing.T) {
	client := NewHTTPPostalClient("http://127.0.0.1:0")

	for _, code := range []string{"", "12345", "1234567", "56OO01"} {
		_, err := client.Lookup(code)
		assert.ErrorIs(t, err, ErrInvalidPostalCode)
	}
}

func TestLookupNoRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"Status":"Error","PostOffice":null}]`))
	}))
	defer server.Close()

	client := NewHTTPPostalClient(server.URL)
	_, err := client.Lookup("999999")
	assert.ErrorIs(t, err, ErrPostalNotFound)
}

func TestLookupServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewHTTPPostalClient(server.URL)
	_, err := client.Lookup("560001")
	assert.Error(t, err)
}
