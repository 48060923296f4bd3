// Package editor validates add-product form input and builds new products.
package editor

import (
	"math"
	"strconv"
	"strings"

	"catalog-admin/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Form is the raw, untyped input of the add-product form.
type Form struct {
	Title       string
	Price       string
	Category    string
	Description string
	Rate        string
	Count       string
}

// submission is the presence check applied before any parsing.
type submission struct {
	Title       string `validate:"required"`
	Price       string `validate:"required"`
	Category    string `validate:"required"`
	Description string `validate:"required"`
	Rate        string `validate:"required"`
	Count       string `validate:"required"`
	Image       string `validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the form and returns the product it describes, without an
// ID. Rules are applied in order and the first failure is returned:
// model.ErrMissingFields, then model.ErrNotANumber, then model.ErrNegative.
func Validate(f Form, imageRef string) (model.Product, error) {
	if err := validate.Struct(submission{
		Title:       f.Title,
		Price:       f.Price,
		Category:    f.Category,
		Description: f.Description,
		Rate:        f.Rate,
		Count:       f.Count,
		Image:       imageRef,
	}); err != nil {
		return model.Product{}, model.ErrMissingFields
	}

	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil {
		return model.Product{}, model.ErrNotANumber
	}
	rate, ok := parseFinite(f.Rate)
	if !ok {
		return model.Product{}, model.ErrNotANumber
	}
	count, ok := parseFinite(f.Count)
	if !ok || count != math.Trunc(count) || math.Abs(count) > math.MaxInt32 {
		return model.Product{}, model.ErrNotANumber
	}

	if price.IsNegative() || rate < 0 || count < 0 {
		return model.Product{}, model.ErrNegative
	}

	return model.Product{
		Title:       f.Title,
		Price:       price,
		Category:    f.Category,
		Description: f.Description,
		Image:       imageRef,
		Rating: model.Rating{
			Rate:  rate,
			Count: int(count),
		},
	}, nil
}

func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
