package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"hadiah/internal/clients"
	"hadiah/internal/gateway"
	"hadiah/internal/handlers"
	"hadiah/internal/prefs"
	"hadiah/internal/repositories"
	"hadiah/internal/services"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	productRepo := repositories.NewMockProductRepository()
	couponRepo := repositories.NewMockCouponRepository()
	orderRepo := repositories.NewMockOrderRepository()
	userRepo := repositories.NewMockUserRepository()
	seedProducts(productRepo)
	seedCoupons(couponRepo)

	prefStore := prefs.NewStore(filepath.Join(t.TempDir(), "prefs.json"))
	assert.NoError(t, prefStore.Load())

	geoClient := clients.NewHTTPGeoClient("http://127.0.0.1:0")
	postalClient := clients.NewHTTPPostalClient("http://127.0.0.1:0")
	paymentGateway := gateway.NewRazorpayGateway("rzp_test_key", "rzp_test_secret")

	authService := services.NewAuthService(userRepo, "test_secret")
	couponService := services.NewCouponService(couponRepo)
	currencyService := services.NewCurrencyService(prefStore, geoClient, "INR")
	checkoutService := services.NewCheckoutService(orderRepo, couponService, currencyService, paymentGateway, nil)

	return newApp(appDeps{
		authService:     authService,
		authHandler:     handlers.NewAuthHandler(authService),
		productHandler:  handlers.NewProductHandler(services.NewProductService(productRepo)),
		couponHandler:   handlers.NewCouponHandler(couponService),
		currencyHandler: handlers.NewCurrencyHandler(currencyService),
		checkoutHandler: handlers.NewCheckoutHandler(checkoutService),
		postalHandler:   handlers.NewPostalHandler(postalClient),
	})
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestProductListIsPublic(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCheckoutRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCatalogManagementRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
