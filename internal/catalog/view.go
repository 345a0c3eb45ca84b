package catalog

import "productdesk/internal/models"

// Status is the lifecycle of a page: loading until the backend answers,
// then loaded or errored.
type Status string

const (
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusErrored Status = "errored"
)

const (
	emptyCatalogMessage = "No products found. Start by adding your first product!"
	noMatchMessage      = "No products match your search criteria."
)

// Card is one product as shown in the list.
type Card struct {
	models.Product
	PriceLabel    string     `json:"priceLabel"`
	CategoryLabel string     `json:"categoryLabel"`
	CategoryColor string     `json:"categoryColor"`
	StockLabel    string     `json:"stockLabel"`
	StockLevel    StockLevel `json:"stockLevel"`
}

// NewCard formats p for the list.
func NewCard(p models.Product) Card {
	return Card{
		Product:       p,
		PriceLabel:    FormatPrice(p.Price),
		CategoryLabel: p.Category.Label(),
		CategoryColor: p.Category.Color(),
		StockLabel:    StockLabel(p.StockQuantity),
		StockLevel:    StockLevelOf(p.StockQuantity),
	}
}

// ListView is the product list page.
type ListView struct {
	Status       Status `json:"status"`
	Query        Query  `json:"query"`
	Items        []Card `json:"items"`
	Total        int    `json:"total"`
	Matched      int    `json:"matched"`
	EmptyMessage string `json:"emptyMessage,omitempty"`
	Error        string `json:"error,omitempty"`
}

// NewListView projects the fetched collection through q.
func NewListView(all []models.Product, q Query) *ListView {
	projected := Project(all, q)
	cards := make([]Card, 0, len(projected))
	for _, p := range projected {
		cards = append(cards, NewCard(p))
	}

	v := &ListView{
		Status:  StatusLoaded,
		Query:   q,
		Items:   cards,
		Total:   len(all),
		Matched: len(cards),
	}
	switch {
	case len(all) == 0:
		v.EmptyMessage = emptyCatalogMessage
	case len(cards) == 0:
		v.EmptyMessage = noMatchMessage
	}
	return v
}

// ErroredListView is the list page after a failed fetch.
func ErroredListView(q Query, message string) *ListView {
	return &ListView{
		Status: StatusErrored,
		Query:  q,
		Items:  []Card{},
		Error:  message,
	}
}

// DetailView is the product detail page.
type DetailView struct {
	Card
	CreatedLabel string `json:"createdLabel"`
	UpdatedLabel string `json:"updatedLabel"`
}

func NewDetailView(p models.Product) *DetailView {
	return &DetailView{
		Card:         NewCard(p),
		CreatedLabel: FormatDate(p.CreatedAt),
		UpdatedLabel: FormatDate(p.UpdatedAt),
	}
}
