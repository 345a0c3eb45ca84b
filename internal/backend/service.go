// Package backend implements the product REST contract the product pages
// consume. It is the reference backend used for local development and
// integration tests.
package backend

import (
	"fmt"
	"time"

	"productdesk/internal/models"
	"productdesk/internal/repositories"
	"productdesk/internal/validation"

	"go.uber.org/zap"
)

// EventPublisher publishes product change events.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// Service handles business logic related to stored products.
type Service struct {
	repo      repositories.ProductRepository
	validator *validation.Validator
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a new Service. publisher may be nil, in which case no
// events are published.
func NewService(repo repositories.ProductRepository, publisher EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validation.New(),
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// List retrieves all products.
func (s *Service) List() ([]models.Product, error) {
	return s.repo.GetAll()
}

// Get retrieves a single product by its ID.
func (s *Service) Get(id int64) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Create validates form and stores a new product.
func (s *Service) Create(form models.ProductFormData) (*models.Product, error) {
	if err := s.validator.Form(form); err != nil {
		return nil, err
	}
	product := &models.Product{}
	product.Apply(form)
	if err := s.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product in repository: %w", err)
	}
	s.publish(models.ProductCreated, product.ID, product)
	return product, nil
}

// Update validates form and replaces the editable fields of product id.
func (s *Service) Update(id int64, form models.ProductFormData) (*models.Product, error) {
	if err := s.validator.Form(form); err != nil {
		return nil, err
	}
	product := &models.Product{ID: id}
	product.Apply(form)
	if err := s.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	s.publish(models.ProductUpdated, id, product)
	return product, nil
}

// Delete deletes a product by its ID.
func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	s.publish(models.ProductDeleted, id, nil)
	return nil
}

// publish reports a change. A failed publish never fails the request.
func (s *Service) publish(eventType models.ProductEventType, id int64, product *models.Product) {
	if s.publisher == nil {
		return
	}
	event := models.ProductEvent{
		Type:       eventType,
		ProductID:  id,
		Product:    product,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.PublishProductEvent(event); err != nil {
		s.logger.Warn("failed to publish product event",
			zap.String("type", string(eventType)),
			zap.Int64("product_id", id),
			zap.Error(err),
		)
		return
	}
	s.logger.Debug("published product event", zap.String("type", string(eventType)), zap.Int64("product_id", id))
}
