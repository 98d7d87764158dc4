package cart_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-console/internal/cart"
	"github.com/noah-isme/toko-console/internal/pricing"
)

func TestCartLifecycle(t *testing.T) {
	var c cart.Cart
	require.True(t, c.Empty())
	require.True(t, c.Subtotal().IsZero())

	tee := pricing.NewItem("a", "Tee", "top", pricing.Amount("12.00"))
	c.Add(tee)
	c.Add(pricing.Discount(tee, pricing.Amount("50")))
	require.Equal(t, 2, c.Len())
	require.True(t, pricing.Amount("18").Equal(c.Subtotal()))

	items := c.Items()
	items[0] = pricing.NewItem("x", "Other", "misc", pricing.Amount("1"))
	require.Equal(t, "a", c.Items()[0].ID(), "Items must return a copy")

	c.Clear()
	require.True(t, c.Empty())
}
