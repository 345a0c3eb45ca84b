// Package catalog derives what a product list page shows from the full
// product collection: the filtered, searched and sorted projection, and the
// formatted labels of each product.
package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"productdesk/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField selects the product attribute a projection is ordered by.
type SortField string

const (
	SortByName          SortField = "name"
	SortByPrice         SortField = "price"
	SortByStockQuantity SortField = "stockQuantity"
)

// SortDirection is ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Query holds the list page controls. The zero Category means all categories.
type Query struct {
	Search        string          `json:"search"`
	Category      models.Category `json:"category,omitempty"`
	SortField     SortField       `json:"sort"`
	SortDirection SortDirection   `json:"direction"`
}

// DefaultQuery is the state of a freshly opened list page.
func DefaultQuery() Query {
	return Query{SortField: SortByName, SortDirection: Ascending}
}

// ParseQuery builds a Query from its wire form. Empty values select the
// defaults.
func ParseQuery(search, category, sort, direction string) (Query, error) {
	q := DefaultQuery()
	q.Search = search

	if category != "" {
		c, err := models.ParseCategory(category)
		if err != nil {
			return Query{}, err
		}
		q.Category = c
	}

	switch SortField(sort) {
	case "":
	case SortByName, SortByPrice, SortByStockQuantity:
		q.SortField = SortField(sort)
	default:
		return Query{}, fmt.Errorf("unknown sort field %q", sort)
	}

	switch SortDirection(direction) {
	case "":
	case Ascending, Descending:
		q.SortDirection = SortDirection(direction)
	default:
		return Query{}, fmt.Errorf("unknown sort direction %q", direction)
	}
	return q, nil
}

// Project returns the items matching q in the order q asks for. Items match
// when the search text is a case-insensitive substring of the name or the
// description and, if q names a category, the category is equal. Equal sort
// keys keep their input order. items is not modified.
func Project(items []models.Product, q Query) []models.Product {
	fold := cases.Fold()
	term := fold.String(q.Search)

	out := make([]models.Product, 0, len(items))
	for _, p := range items {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if !strings.Contains(fold.String(p.Name), term) && !strings.Contains(fold.String(p.Description), term) {
			continue
		}
		out = append(out, p)
	}

	compare := comparator(q.SortField)
	if q.SortDirection == Descending {
		asc := compare
		compare = func(a, b models.Product) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

func comparator(field SortField) func(a, b models.Product) int {
	switch field {
	case SortByPrice:
		return func(a, b models.Product) int { return a.Price.Cmp(b.Price) }
	case SortByStockQuantity:
		return func(a, b models.Product) int { return cmp.Compare(a.StockQuantity, b.StockQuantity) }
	default:
		col := collate.New(language.English)
		return func(a, b models.Product) int { return col.CompareString(a.Name, b.Name) }
	}
}
