package model

import "github.com/shopspring/decimal"

// Rating holds the aggregated customer rating of a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product represents an item in the catalogue.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`
}

// HasImage reports whether the product carries an image reference.
func (p Product) HasImage() bool {
	return p.Image != ""
}
