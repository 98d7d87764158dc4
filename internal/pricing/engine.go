package pricing

import "github.com/shopspring/decimal"

// Money represents an exact monetary amount in the shop currency.
type Money = decimal.Decimal

// Surcharger computes an additive cost from a pre-shipping subtotal.
type Surcharger interface {
	Surcharge(subtotal Money) Money
}

// Summary aggregates computed pricing components.
type Summary struct {
	Subtotal Money
	Shipping Money
	Total    Money
}

// Amount parses a decimal literal. It panics on malformed input and is meant
// for constants and tests.
func Amount(value string) Money {
	return decimal.RequireFromString(value)
}

// Subtotal sums the effective price of every item.
func Subtotal(items []Item) Money {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Price())
	}
	return subtotal
}

// Quote calculates the subtotal, the shipping surcharge derived from it and the
// grand total.
func Quote(items []Item, shipping Surcharger) Summary {
	subtotal := Subtotal(items)
	surcharge := decimal.Zero
	if shipping != nil {
		surcharge = shipping.Surcharge(subtotal)
	}
	return Summary{
		Subtotal: subtotal,
		Shipping: surcharge,
		Total:    subtotal.Add(surcharge),
	}
}
