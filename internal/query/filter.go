package query

import (
	"fmt"
	"strings"

	"catalog-admin/internal/model"

	"github.com/shopspring/decimal"
)

// PricePresets are the price ranges offered by the presenter.
var PricePresets = []string{"0 - 100", "100 - 200", "200 - 1000"}

// PriceRange is an inclusive price interval.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// ParsePriceRange parses a range written as "min - max".
//
// Parsing is tolerant: blank input or non-numeric bounds yield (nil, false)
// and callers treat that as "no price filter" rather than an error.
func ParsePriceRange(s string) (*PriceRange, bool) {
	minStr, maxStr, found := strings.Cut(s, "-")
	if !found {
		return nil, false
	}

	lo, err := decimal.NewFromString(strings.TrimSpace(minStr))
	if err != nil {
		return nil, false
	}
	hi, err := decimal.NewFromString(strings.TrimSpace(maxStr))
	if err != nil {
		return nil, false
	}

	return &PriceRange{Min: lo, Max: hi}, true
}

// Contains reports whether price lies within the range, bounds included.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}

func (r PriceRange) String() string {
	return fmt.Sprintf("%s - %s", r.Min.String(), r.Max.String())
}

// Filter is the set of predicates applied to the collection. Zero fields
// are inactive.
type Filter struct {
	// Title is matched as a case-insensitive substring.
	Title string
	// Price, when set, is an inclusive range.
	Price *PriceRange
	// Category is matched exactly, ignoring case.
	Category string
}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool {
	return f.Title == "" && f.Price == nil && f.Category == ""
}

// Matches reports whether p satisfies every active predicate.
func (f Filter) Matches(p model.Product) bool {
	if f.Title != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Title)) {
		return false
	}
	if f.Price != nil && !f.Price.Contains(p.Price) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	return true
}

// Applied returns a label per active range or category predicate, in the
// form shown next to the filter controls.
func (f Filter) Applied() []string {
	var labels []string
	if f.Price != nil {
		labels = append(labels, "Price Range: "+f.Price.String())
	}
	if f.Category != "" {
		labels = append(labels, "Category: "+strings.ToLower(f.Category))
	}
	return labels
}
