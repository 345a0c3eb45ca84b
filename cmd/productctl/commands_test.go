package main

import (
	"bytes"
	"net"
	"strings"
	"testing"

	"productdesk/internal/backend"
	"productdesk/internal/models"
	"productdesk/internal/repositories"
	"productdesk/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startBackend(t *testing.T) (*repositories.MockProductRepository, string) {
	t.Helper()
	repo := repositories.NewMockProductRepository()
	products := []models.Product{
		{Name: "Wireless Headphones", Description: "Noise cancelling over-ear headphones", Price: decimal.RequireFromString("99.99"), StockQuantity: 15, Category: models.CategoryElectronics},
		{Name: "Office Chair", Description: "Ergonomic mesh office chair", Price: decimal.RequireFromString("249.50"), StockQuantity: 0, Category: models.CategoryFurniture},
		{Name: "Go Programming", Description: "A practical guide to writing Go", Price: decimal.RequireFromString("39.99"), StockQuantity: 5, Category: models.CategoryBooks},
	}
	for i := range products {
		require.NoError(t, repo.Create(&products[i]))
	}

	api := fiber.New(fiber.Config{DisableStartupMessage: true})
	backend.NewHandler(backend.NewService(repo, nil, zap.NewNop()), zap.NewNop()).RegisterRoutes(api)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = api.Listener(ln) }()
	t.Cleanup(func() { _ = api.Shutdown() })

	return repo, "http://" + ln.Addr().String()
}

// run executes productctl against baseURL with stdin as the terminal input.
func run(t *testing.T, baseURL, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd, c := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	c.logger = zap.NewNop()
	rootCmd.SetArgs(append([]string{"--backend", baseURL}, args...))

	err := rootCmd.Execute()
	if err != nil {
		c.printError(err)
	}
	return out.String(), errOut.String(), err
}

func TestListCommand(t *testing.T) {
	_, baseURL := startBackend(t)

	out, _, err := run(t, baseURL, "", "list")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Go Programming"), strings.Index(out, "Office Chair"))
	assert.Less(t, strings.Index(out, "Office Chair"), strings.Index(out, "Wireless Headphones"))
	assert.Contains(t, out, "Showing 3 of 3 products")

	out, _, err = run(t, baseURL, "", "list", "--category", "furniture")
	require.NoError(t, err)
	assert.Contains(t, out, "Office Chair")
	assert.NotContains(t, out, "Wireless Headphones")
	assert.Contains(t, out, "Showing 1 of 3 products")

	out, _, err = run(t, baseURL, "", "list", "--sort", "price", "--desc")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Office Chair"), strings.Index(out, "Go Programming"))

	_, _, err = run(t, baseURL, "", "list", "--sort", "color")
	assert.Error(t, err)
}

func TestListCommandBackendDown(t *testing.T) {
	_, errOut, err := run(t, "http://127.0.0.1:1", "", "list")
	assert.Error(t, err)
	assert.Contains(t, errOut, services.MsgListFailed)
}

func TestShowCommand(t *testing.T) {
	_, baseURL := startBackend(t)

	out, _, err := run(t, baseURL, "", "show", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Office Chair")
	assert.Contains(t, out, "$249.50")
	assert.Contains(t, out, "Out of stock")

	_, errOut, err := run(t, baseURL, "", "show", "99")
	assert.Error(t, err)
	assert.Contains(t, errOut, services.MsgDetailFailed)

	_, _, err = run(t, baseURL, "", "show", "abc")
	assert.Error(t, err)
}

func TestCreateCommand(t *testing.T) {
	repo, baseURL := startBackend(t)

	out, _, err := run(t, baseURL, "", "create",
		"--name", "Desk Lamp",
		"--description", "Adjustable brass desk lamp",
		"--price", "35.50",
		"--stock", "12",
		"--category", "furniture",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Created product 4: Desk Lamp")

	stored, err := repo.GetByID(4)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryFurniture, stored.Category)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("35.5")))
}

func TestCreateCommandValidation(t *testing.T) {
	repo, baseURL := startBackend(t)

	_, errOut, err := run(t, baseURL, "", "create", "--description", "short")
	assert.Error(t, err)
	assert.Contains(t, errOut, "Validation failed:")
	assert.Contains(t, errOut, "name: Product name is required")
	assert.Contains(t, errOut, "description: Description should be at least 10 characters")
	assert.Contains(t, errOut, "price: Price must be greater than 0")

	_, _, err = run(t, baseURL, "", "create", "--price", "cheap")
	assert.ErrorContains(t, err, "invalid price")

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestEditCommand(t *testing.T) {
	repo, baseURL := startBackend(t)

	out, _, err := run(t, baseURL, "", "edit", "3", "--stock", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated product 3: Go Programming")

	stored, err := repo.GetByID(3)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.StockQuantity)
	assert.Equal(t, "A practical guide to writing Go", stored.Description)
	assert.Equal(t, models.CategoryBooks, stored.Category)
}

func TestDeleteCommand(t *testing.T) {
	repo, baseURL := startBackend(t)

	out, _, err := run(t, baseURL, "n\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `Are you sure you want to delete "Wireless Headphones"? [y/N]`)
	assert.Contains(t, out, "Cancelled.")
	_, err = repo.GetByID(1)
	assert.NoError(t, err)

	out, _, err = run(t, baseURL, "y\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Product 1 deleted successfully")
	_, err = repo.GetByID(1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	out, _, err = run(t, baseURL, "", "delete", "2", "--yes")
	require.NoError(t, err)
	assert.NotContains(t, out, "Are you sure")
	_, err = repo.GetByID(2)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, errOut, err := run(t, baseURL, "", "delete", "2", "--yes")
	assert.Error(t, err)
	assert.Contains(t, errOut, services.MsgDeleteFailed)
}

func TestCategoriesCommand(t *testing.T) {
	out, _, err := run(t, "http://127.0.0.1:1", "", "categories")
	require.NoError(t, err)
	for _, c := range models.Categories() {
		assert.Contains(t, out, string(c))
		assert.Contains(t, out, c.Label())
	}
}

func TestEventsCommandRequiresBroker(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "")
	_, _, err := run(t, "http://127.0.0.1:1", "", "events")
	assert.ErrorContains(t, err, "RABBITMQ_URL is not set")
}
