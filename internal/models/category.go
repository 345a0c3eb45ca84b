package models

import "fmt"

// Category is the fixed classification of a product.
type Category string

const (
	CategoryElectronics Category = "ELECTRONICS"
	CategoryClothing    Category = "CLOTHING"
	CategoryBooks       Category = "BOOKS"
	CategoryFurniture   Category = "FURNITURE"
	CategoryAccessories Category = "ACCESSORIES"
)

// Categories returns every category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryClothing,
		CategoryBooks,
		CategoryFurniture,
		CategoryAccessories,
	}
}

// ParseCategory converts a wire value into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryClothing, CategoryBooks, CategoryFurniture, CategoryAccessories:
		return true
	}
	return false
}

// Label returns the human readable name of the category.
// Unknown values are returned unchanged.
func (c Category) Label() string {
	switch c {
	case CategoryElectronics:
		return "Electronics"
	case CategoryClothing:
		return "Clothing"
	case CategoryBooks:
		return "Books"
	case CategoryFurniture:
		return "Furniture"
	case CategoryAccessories:
		return "Accessories"
	}
	return string(c)
}

// Color returns the badge color of the category as a hex string.
func (c Category) Color() string {
	switch c {
	case CategoryElectronics:
		return "#1E40AF" // blue
	case CategoryClothing:
		return "#6B21A8" // purple
	case CategoryBooks:
		return "#92400E" // amber
	case CategoryFurniture:
		return "#065F46" // emerald
	case CategoryAccessories:
		return "#9F1239" // rose
	}
	return "#1F2937" // gray
}

// CategoryOption is a category as offered to a select input.
type CategoryOption struct {
	Value Category `json:"value"`
	Label string   `json:"label"`
	Color string   `json:"color"`
}

// CategoryOptions lists every category with its label and color.
func CategoryOptions() []CategoryOption {
	cats := Categories()
	options := make([]CategoryOption, 0, len(cats))
	for _, c := range cats {
		options = append(options, CategoryOption{Value: c, Label: c.Label(), Color: c.Color()})
	}
	return options
}
