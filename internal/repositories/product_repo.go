package repositories

import (
	"productdesk/internal/models"
)

// ProductRepository defines the interface for product data access.
// Create and Update replace *product with the stored record, so
// backend-assigned fields (ID, timestamps) are visible to the caller.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id int64) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id int64) error
}
