package cart

import "github.com/noah-isme/toko-console/internal/pricing"

// Cart is a customer's ordered list of selected items prior to checkout.
type Cart struct {
	items []pricing.Item
}

// Add appends item. The same item may appear more than once.
func (c *Cart) Add(item pricing.Item) {
	c.items = append(c.items, item)
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []pricing.Item {
	return append([]pricing.Item(nil), c.items...)
}

// Len returns the number of lines.
func (c *Cart) Len() int { return len(c.items) }

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool { return len(c.items) == 0 }

// Clear removes every line.
func (c *Cart) Clear() { c.items = nil }

// Subtotal sums the effective prices of the lines.
func (c *Cart) Subtotal() pricing.Money {
	return pricing.Subtotal(c.items)
}
