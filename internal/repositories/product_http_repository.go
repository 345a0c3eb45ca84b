package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"productdesk/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

const maxErrorBody = 256

// HTTPProductRepository is a ProductRepository backed by the product REST
// backend. Every failure is returned as a *RequestFailedError.
type HTTPProductRepository struct {
	baseURL string
}

// NewHTTPProductRepository creates a repository for the backend at baseURL,
// e.g. "http://localhost:8081".
func NewHTTPProductRepository(baseURL string) *HTTPProductRepository {
	return &HTTPProductRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the backend address.
func (r *HTTPProductRepository) BaseURL() string {
	return r.baseURL
}

// GetAll fetches the full product collection.
func (r *HTTPProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.do(fiber.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetByID fetches a single product.
func (r *HTTPProductRepository) GetByID(id int64) (*models.Product, error) {
	var product models.Product
	if err := r.do(fiber.MethodGet, productPath(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Create sends the form fields of product and replaces it with the created
// record.
func (r *HTTPProductRepository) Create(product *models.Product) error {
	var created models.Product
	if err := r.do(fiber.MethodPost, "/products", product.FormData(), &created); err != nil {
		return err
	}
	*product = created
	return nil
}

// Update sends the form fields of product and replaces it with the updated
// record.
func (r *HTTPProductRepository) Update(product *models.Product) error {
	var updated models.Product
	if err := r.do(fiber.MethodPut, productPath(product.ID), product.FormData(), &updated); err != nil {
		return err
	}
	*product = updated
	return nil
}

// Delete removes a product.
func (r *HTTPProductRepository) Delete(id int64) error {
	return r.do(fiber.MethodDelete, productPath(id), nil, nil)
}

func productPath(id int64) string {
	return fmt.Sprintf("/products/%d", id)
}

func (r *HTTPProductRepository) do(method, path string, body, out interface{}) error {
	url := r.baseURL + path
	fail := func(status int, err error) error {
		return &RequestFailedError{Method: method, URL: url, StatusCode: status, Err: err}
	}

	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(url)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	agent.Set(fiber.HeaderXRequestID, uuid.NewString())
	if body != nil {
		agent.JSON(body)
	} else {
		agent.ContentType(fiber.MIMEApplicationJSON)
	}
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return fail(0, err)
	}

	// Bytes releases the agent.
	code, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		return fail(0, errors.Join(errs...))
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return fail(code, errors.New(errorText(code, respBody)))
	}
	if out == nil {
		return nil
	}
	if len(respBody) == 0 {
		return fail(code, errors.New("empty response body"))
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fail(code, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func errorText(code int, body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return utils.StatusMessage(code)
	}
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	return text
}
