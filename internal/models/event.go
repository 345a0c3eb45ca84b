package models

import "time"

// ProductEventType names a change to a product.
type ProductEventType string

const (
	ProductCreated ProductEventType = "product.created"
	ProductUpdated ProductEventType = "product.updated"
	ProductDeleted ProductEventType = "product.deleted"
)

// ProductEvent is published after a product is created, updated or deleted.
// Product is nil for deletions.
type ProductEvent struct {
	Type       ProductEventType `json:"type"`
	ProductID  int64            `json:"productId"`
	Product    *Product         `json:"product,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// Valid reports whether t is a known event type.
func (t ProductEventType) Valid() bool {
	switch t {
	case ProductCreated, ProductUpdated, ProductDeleted:
		return true
	}
	return false
}
