package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// StockLevel buckets a stock quantity for display.
type StockLevel string

const (
	StockOut     StockLevel = "out"
	StockLow     StockLevel = "low"
	StockHealthy StockLevel = "healthy"
)

const lowStockThreshold = 10

// FormatPrice renders a price in US dollars, e.g. $1,299.99.
func FormatPrice(price decimal.Decimal) string {
	f, _ := price.Round(2).Float64()
	return message.NewPrinter(language.AmericanEnglish).Sprintf("$%.2f", f)
}

// FormatDate renders a timestamp as e.g. "Mar 4, 2025". The zero time
// renders as an empty string.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func StockLevelOf(quantity int) StockLevel {
	switch {
	case quantity <= 0:
		return StockOut
	case quantity < lowStockThreshold:
		return StockLow
	default:
		return StockHealthy
	}
}

func StockLabel(quantity int) string {
	if quantity > 0 {
		return fmt.Sprintf("%d in stock", quantity)
	}
	return "Out of stock"
}
