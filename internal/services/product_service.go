package services

import (
	"errors"

	"productdesk/internal/catalog"
	"productdesk/internal/models"
	"productdesk/internal/repositories"
	"productdesk/internal/validation"

	"go.uber.org/zap"
)

// Messages shown to the user when a backend call fails.
const (
	MsgListFailed   = "Failed to load products. Please try again later."
	MsgDetailFailed = "Failed to load product details. The product may not exist or has been removed."
	MsgEditFailed   = "Failed to load product. The product may not exist or has been removed."
	MsgCreateFailed = "Failed to create product. Please check your inputs and try again."
	MsgUpdateFailed = "Failed to update product. Please check your inputs and try again."
	MsgDeleteFailed = "Failed to delete product. Please try again."
)

// OperationError is a failed page operation. Message is safe to show to the
// user; Err is the cause and is only logged.
type OperationError struct {
	Message string
	Err     error
}

func (e *OperationError) Error() string { return e.Message + ": " + e.Err.Error() }

func (e *OperationError) Unwrap() error { return e.Err }

// ProductService runs the product pages against the backend.
type ProductService struct {
	repo      repositories.ProductRepository
	validator *validation.Validator
	logger    *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		validator: validation.New(),
		logger:    logger,
	}
}

func (s *ProductService) fail(op string, id int64, message string, err error) error {
	s.logger.Error("product operation failed",
		zap.String("op", op),
		zap.Int64("product_id", id),
		zap.Int("backend_status", repositories.StatusOf(err)),
		zap.Error(err),
	)
	return &OperationError{Message: message, Err: err}
}

// ListProducts fetches the full collection and projects it through q.
// A failed fetch returns the errored view together with the error.
func (s *ProductService) ListProducts(q catalog.Query) (*catalog.ListView, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return catalog.ErroredListView(q, MsgListFailed), s.fail("list", 0, MsgListFailed, err)
	}
	return catalog.NewListView(products, q), nil
}

// GetProduct fetches one product for the detail page.
func (s *ProductService) GetProduct(id int64) (*catalog.DetailView, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, s.fail("get", id, MsgDetailFailed, err)
	}
	return catalog.NewDetailView(*product), nil
}

// EditForm returns the stored product as pre-filled form data.
func (s *ProductService) EditForm(id int64) (*models.ProductFormData, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, s.fail("edit", id, MsgEditFailed, err)
	}
	form := product.FormData()
	return &form, nil
}

// CreateProduct validates form and creates the product.
// Invalid forms return validation.Errors without calling the backend.
func (s *ProductService) CreateProduct(form models.ProductFormData) (*models.Product, error) {
	if err := s.validator.Form(form); err != nil {
		return nil, err
	}
	product := &models.Product{}
	product.Apply(form)
	if err := s.repo.Create(product); err != nil {
		return nil, s.fail("create", 0, MsgCreateFailed, err)
	}
	s.logger.Info("product created", zap.Int64("product_id", product.ID))
	return product, nil
}

// UpdateProduct validates form and replaces the editable fields of product id.
func (s *ProductService) UpdateProduct(id int64, form models.ProductFormData) (*models.Product, error) {
	if err := s.validator.Form(form); err != nil {
		return nil, err
	}
	product := &models.Product{ID: id}
	product.Apply(form)
	if err := s.repo.Update(product); err != nil {
		return nil, s.fail("update", id, MsgUpdateFailed, err)
	}
	s.logger.Info("product updated", zap.Int64("product_id", id))
	return product, nil
}

// DeleteProduct deletes a product.
func (s *ProductService) DeleteProduct(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		return s.fail("delete", id, MsgDeleteFailed, err)
	}
	s.logger.Info("product deleted", zap.Int64("product_id", id))
	return nil
}

// UserMessage returns the text to show for err.
func UserMessage(err error) string {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Message
	}
	return err.Error()
}
