package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend contract carries prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a product in the catalog.
type Product struct {
	ID            int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string          `json:"name" gorm:"type:varchar(255);not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `json:"stockQuantity" gorm:"not null;default:0"`
	Category      Category        `json:"category" gorm:"type:varchar(32);index;not null"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// FormData returns the editable fields of the product.
func (p Product) FormData() ProductFormData {
	return ProductFormData{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Category:      p.Category,
	}
}

// Apply copies the editable fields of form onto the product.
func (p *Product) Apply(form ProductFormData) {
	p.Name = form.Name
	p.Description = form.Description
	p.Price = form.Price
	p.StockQuantity = form.StockQuantity
	p.Category = form.Category
}

// ProductFormData is the request body of create and update.
type ProductFormData struct {
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description" validate:"required,min=10"`
	Price         decimal.Decimal `json:"price" validate:"gt=0"`
	StockQuantity int             `json:"stockQuantity" validate:"gte=0"`
	Category      Category        `json:"category" validate:"required,category"`
}

// DefaultFormData is the blank form shown when creating a product.
func DefaultFormData() ProductFormData {
	return ProductFormData{
		Price:    decimal.Zero,
		Category: CategoryElectronics,
	}
}
