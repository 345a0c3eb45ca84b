package backend_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"productdesk/internal/backend"
	"productdesk/internal/models"
	"productdesk/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MockPublisher is a mock implementation of backend.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishProductEvent(event models.ProductEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func setupApp(t *testing.T, publisher backend.EventPublisher) *fiber.App {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))

	repo := repositories.NewGORMProductRepository(db)
	service := backend.NewService(repo, publisher, zap.NewNop())
	app := fiber.New()
	backend.NewHandler(service, zap.NewNop()).RegisterRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

const chairJSON = `{"name":"Chair","description":"Wooden dining chair","price":49.9,"stockQuantity":4,"category":"FURNITURE"}`

func TestHandler_CRUD(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("PublishProductEvent", mock.Anything).Return(nil)
	app := setupApp(t, publisher)

	resp, body := doJSON(t, app, http.MethodGet, "/products", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))

	resp, body = doJSON(t, app, http.MethodPost, "/products", chairJSON)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created models.Product
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "49.9", created.Price.String())
	assert.False(t, created.CreatedAt.IsZero())

	resp, body = doJSON(t, app, http.MethodGet, "/products/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"stockQuantity":4`)

	update := strings.Replace(chairJSON, `"stockQuantity":4`, `"stockQuantity":0`, 1)
	resp, body = doJSON(t, app, http.MethodPut, "/products/1", update)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var updated models.Product
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, 0, updated.StockQuantity)

	resp, body = doJSON(t, app, http.MethodDelete, "/products/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)

	resp, _ = doJSON(t, app, http.MethodGet, "/products/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	publisher.AssertNumberOfCalls(t, "PublishProductEvent", 3)
	publisher.AssertCalled(t, "PublishProductEvent", mock.MatchedBy(func(e models.ProductEvent) bool {
		return e.Type == models.ProductDeleted && e.ProductID == 1 && e.Product == nil
	}))
}

func TestHandler_Errors(t *testing.T) {
	app := setupApp(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"missing product", http.MethodGet, "/products/42", "", http.StatusNotFound},
		{"non-numeric id", http.MethodGet, "/products/abc", "", http.StatusBadRequest},
		{"zero id", http.MethodDelete, "/products/0", "", http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/products", `{"name":`, http.StatusBadRequest},
		{"invalid form", http.MethodPost, "/products", `{"name":"","description":"short","price":0,"stockQuantity":-1,"category":"TOYS"}`, http.StatusBadRequest},
		{"update missing", http.MethodPut, "/products/42", chairJSON, http.StatusNotFound},
		{"delete missing", http.MethodDelete, "/products/42", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, app, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode, string(body))
		})
	}
}

func TestHandler_ValidationErrorsByField(t *testing.T) {
	app := setupApp(t, nil)

	resp, body := doJSON(t, app, http.MethodPost, "/products",
		`{"name":"","description":"short","price":0,"stockQuantity":-1,"category":"TOYS"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "Validation failed", payload.Message)
	assert.Len(t, payload.Errors, 5)
	assert.Equal(t, "Product name is required", payload.Errors["name"])
}

func TestService_PublishFailureDoesNotFailRequest(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("PublishProductEvent", mock.Anything).Return(errors.New("broker unavailable")).Once()
	app := setupApp(t, publisher)

	resp, body := doJSON(t, app, http.MethodPost, "/products", chairJSON)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	publisher.AssertExpectations(t)
}
