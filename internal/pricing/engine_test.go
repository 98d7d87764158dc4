package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-console/internal/pricing"
)

type flatSurcharge struct{ fee pricing.Money }

func (f flatSurcharge) Surcharge(pricing.Money) pricing.Money { return f.fee }

func TestClampPercent(t *testing.T) {
	cases := map[string]string{
		"-5":   "10",
		"0":    "10",
		"9.99": "10",
		"10":   "10",
		"35.5": "35.5",
		"80":   "80",
		"80.1": "80",
		"250":  "80",
	}
	for in, want := range cases {
		got := pricing.Discount(pricing.NewItem("a", "Shirt", "top", pricing.Amount("10")), pricing.Amount(in)).Percent()
		require.Truef(t, pricing.Amount(want).Equal(got), "percent %s: want %s got %s", in, want, got)
	}
}

func TestDiscountPrice(t *testing.T) {
	base := pricing.NewItem("a", "Jacket", "outerwear", pricing.Amount("40.00"))
	discounted := pricing.Discount(base, pricing.Amount("20"))

	require.True(t, pricing.Amount("32").Equal(discounted.Price()))
	require.True(t, pricing.Amount("40").Equal(base.Price()), "base item must not change")
	require.Equal(t, "a", discounted.ID())
	require.True(t, discounted.Discounted())
	require.False(t, base.Discounted())
}

func TestDiscountChainMultiplies(t *testing.T) {
	item := pricing.NewItem("b", "Coat", "outerwear", pricing.Amount("120"))
	percents := []string{"20", "5", "95", "33.3"}
	want := pricing.Amount("120")
	for _, p := range percents {
		item = pricing.Discount(item, pricing.Amount(p))
		clamped := pricing.ClampPercent(pricing.Amount(p))
		want = want.Mul(decimal.NewFromInt(1).Sub(clamped.Div(decimal.NewFromInt(100))))
	}
	require.Equal(t, len(percents), item.Layers())
	require.Truef(t, want.Equal(item.Price()), "want %s got %s", want, item.Price())
}

func TestDescriptionKeepsAnnotations(t *testing.T) {
	item := pricing.NewItem("c", "Scarf", "accessories", pricing.Amount("15"))
	require.Equal(t, "Scarf (accessories)", item.Description())

	item = pricing.Discount(item, pricing.Amount("20"))
	item = pricing.Discount(item, pricing.Amount("12.5"))
	require.Equal(t, "Scarf (accessories) (Discount 20%) (Discount 12.5%)", item.Description())
}

func TestNegativeBasePriceIsZero(t *testing.T) {
	item := pricing.NewItem("d", "Sock", "misc", pricing.Amount("-3"))
	require.True(t, item.Price().IsZero())
}

func TestQuote(t *testing.T) {
	items := []pricing.Item{
		pricing.NewItem("a", "Tee", "top", pricing.Amount("12.50")),
		pricing.Discount(pricing.NewItem("b", "Jeans", "bottom", pricing.Amount("60")), pricing.Amount("50")),
	}
	summary := pricing.Quote(items, flatSurcharge{fee: pricing.Amount("4.01")})
	require.True(t, pricing.Amount("42.50").Equal(summary.Subtotal))
	require.True(t, pricing.Amount("4.01").Equal(summary.Shipping))
	require.True(t, pricing.Amount("46.51").Equal(summary.Total))

	empty := pricing.Quote(nil, nil)
	require.True(t, empty.Total.IsZero())
}
