package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// MinDiscountPercent is the smallest discount a layer can apply.
	MinDiscountPercent = decimal.NewFromInt(10)
	// MaxDiscountPercent is the largest discount a layer can apply.
	MaxDiscountPercent = decimal.NewFromInt(80)

	hundred = decimal.NewFromInt(100)
)

// Item is an immutable catalog line item. It is either a base item carrying
// the stored price or a discount layer wrapping exactly one inner item.
type Item struct {
	id        string
	name      string
	category  string
	basePrice Money

	inner   *Item
	percent Money
}

// NewItem constructs a base item. Negative prices are raised to zero.
func NewItem(id, name, category string, basePrice Money) Item {
	if basePrice.IsNegative() {
		basePrice = decimal.Zero
	}
	return Item{id: id, name: name, category: category, basePrice: basePrice}
}

// Discount wraps inner in a discount layer. Percentages outside [10, 80] are
// clamped, never rejected.
func Discount(inner Item, percent Money) Item {
	wrapped := inner
	return Item{
		id:        inner.id,
		name:      inner.name,
		category:  inner.category,
		basePrice: inner.basePrice,
		inner:     &wrapped,
		percent:   ClampPercent(percent),
	}
}

// ClampPercent bounds a discount percentage to [MinDiscountPercent, MaxDiscountPercent].
func ClampPercent(percent Money) Money {
	return decimal.Max(MinDiscountPercent, decimal.Min(MaxDiscountPercent, percent))
}

// ID returns the catalog identifier shared by every layer.
func (i Item) ID() string { return i.id }

// Name returns the item name.
func (i Item) Name() string { return i.name }

// Category returns the item category.
func (i Item) Category() string { return i.category }

// BasePrice returns the undiscounted price.
func (i Item) BasePrice() Money { return i.basePrice }

// Discounted reports whether the outermost layer is a discount.
func (i Item) Discounted() bool { return i.inner != nil }

// Percent returns the clamped percentage of the outermost discount layer, or
// zero for a base item.
func (i Item) Percent() Money {
	if i.inner == nil {
		return decimal.Zero
	}
	return i.percent
}

// Layers counts the discount layers wrapped around the base item.
func (i Item) Layers() int {
	n := 0
	for cur := i.inner; cur != nil; cur = cur.inner {
		n++
	}
	return n
}

// Price returns the effective price after every discount layer.
func (i Item) Price() Money {
	if i.inner == nil {
		return i.basePrice
	}
	return i.inner.Price().Mul(hundred.Sub(i.percent)).Shift(-2)
}

// Description returns a human readable label. Each discount layer appends its
// annotation to the inner description.
func (i Item) Description() string {
	if i.inner == nil {
		return fmt.Sprintf("%s (%s)", i.name, i.category)
	}
	return fmt.Sprintf("%s (Discount %s%%)", i.inner.Description(), i.percent.String())
}
