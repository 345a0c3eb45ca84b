package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"productdesk/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const productsJSON = `[
	{"id":1,"name":"Wireless Mouse","description":"Ergonomic wireless mouse","price":25,"stockQuantity":50,"category":"ELECTRONICS","createdAt":"2024-01-15T10:30:00Z","updatedAt":"2024-01-15T10:30:00Z"},
	{"id":2,"name":"Bookshelf","description":"Five shelf oak bookshelf","price":129.99,"stockQuantity":2,"category":"FURNITURE","createdAt":"2024-02-01T08:00:00Z","updatedAt":"2024-02-03T08:00:00Z"}
]`

// setupApp builds the app against a fake backend serving productsJSON.
func setupApp(t *testing.T) (*fiber.App, *observer.ObservedLogs) {
	t.Helper()
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, productsJSON)
	}))
	t.Cleanup(backend.Close)

	v := viper.New()
	v.Set("BACKEND_URL", backend.URL)
	cfg, err := config.Load(v)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.InfoLevel)
	return NewApp(cfg, zap.New(core)), logs
}

func TestHealth(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Contains(t, body["backend"], "http://127.0.0.1")
}

func TestProductListThroughApp(t *testing.T) {
	app, logs := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?sort=price&direction=desc", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-42")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-42", resp.Header.Get(fiber.HeaderXRequestID))

	var body struct {
		Items []struct {
			Name       string `json:"name"`
			PriceLabel string `json:"priceLabel"`
		} `json:"items"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Items, 2)
	assert.Equal(t, "Bookshelf", body.Items[0].Name)
	assert.Equal(t, "$129.99", body.Items[0].PriceLabel)

	entries := logs.FilterMessage("request handled").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
}

func TestUnknownRoute(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Cannot GET /nope", body["message"])
}
