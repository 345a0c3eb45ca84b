package validation_test

import (
	"errors"
	"testing"

	"productdesk/internal/models"
	"productdesk/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() models.ProductFormData {
	return models.ProductFormData{
		Name:          "Bookshelf",
		Description:   "Five shelf walnut bookshelf",
		Price:         decimal.RequireFromString("149.00"),
		StockQuantity: 0,
		Category:      models.CategoryFurniture,
	}
}

func TestForm_Valid(t *testing.T) {
	assert.NoError(t, validation.New().Form(validForm()))
}

func TestForm_DefaultFormIsRejected(t *testing.T) {
	err := validation.New().Form(models.DefaultFormData())

	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, validation.Errors{
		"name":        "Product name is required",
		"description": "Description is required",
		"price":       "Price must be greater than 0",
	}, verrs)
}

func TestForm_FieldRules(t *testing.T) {
	v := validation.New()
	cases := []struct {
		name    string
		mutate  func(f *models.ProductFormData)
		field   string
		message string
	}{
		{"short description", func(f *models.ProductFormData) { f.Description = "Too short" }, "description", "Description should be at least 10 characters"},
		{"negative price", func(f *models.ProductFormData) { f.Price = decimal.NewFromInt(-3) }, "price", "Price must be greater than 0"},
		{"negative stock", func(f *models.ProductFormData) { f.StockQuantity = -1 }, "stockQuantity", "Stock cannot be negative"},
		{"missing category", func(f *models.ProductFormData) { f.Category = "" }, "category", "Category is required"},
		{"unknown category", func(f *models.ProductFormData) { f.Category = "GARDEN" }, "category", "Category is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(&form)

			var verrs validation.Errors
			require.ErrorAs(t, v.Form(form), &verrs)
			assert.Len(t, verrs, 1)
			assert.Equal(t, tc.message, verrs[tc.field])
		})
	}
}

func TestForm_SmallestPriceIsAccepted(t *testing.T) {
	form := validForm()
	form.Price = decimal.RequireFromString("0.01")
	assert.NoError(t, validation.New().Form(form))
}

func TestErrors_MessageIsSorted(t *testing.T) {
	err := validation.Errors{"price": "Price must be greater than 0", "name": "Product name is required"}
	assert.Equal(t, "validation failed: name: Product name is required; price: Price must be greater than 0", err.Error())
}
