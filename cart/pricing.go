package cart

import (
	"storefront/entities"

	"github.com/shopspring/decimal"
)

// PricedLine is a cart line resolved to its product.
type PricedLine struct {
	Product  entities.Product `json:"product"`
	Quantity int              `json:"quantity"`
	Note     *string          `json:"note,omitempty"`
}

// Price resolves each line against products and sums price × quantity.
// Lines whose product is missing are skipped.
func Price(snap Snapshot, products []entities.Product) ([]PricedLine, float64) {
	byID := make(map[uint]entities.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]PricedLine, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		p, ok := byID[l.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, PricedLine{Product: p, Quantity: l.Quantity, Note: l.Note})
	}
	return lines, Total(lines)
}

// Total sums price × quantity in decimal arithmetic.
func Total(lines []PricedLine) float64 {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromFloat(l.Product.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum.InexactFloat64()
}
