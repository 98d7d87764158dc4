package shipping

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-console/internal/pricing"
)

var (
	// FreeShippingThreshold is the subtotal above which standard shipping is free.
	FreeShippingThreshold = pricing.Amount("50.00")
	// StandardFee is charged for standard shipping at or below the threshold.
	StandardFee = pricing.Amount("5.99")
	// ExpressFee is the flat express surcharge.
	ExpressFee = pricing.Amount("12.99")
)

// Method is a shipping policy selected at checkout.
type Method interface {
	// Surcharge computes the shipping cost from the pre-shipping subtotal.
	Surcharge(subtotal pricing.Money) pricing.Money
	// DeliveryDays is an informational delivery estimate.
	DeliveryDays() int
	Label() string
}

// Standard ships for free above FreeShippingThreshold.
type Standard struct{}

func (Standard) Surcharge(subtotal pricing.Money) pricing.Money {
	if subtotal.GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return StandardFee
}

func (Standard) DeliveryDays() int { return 5 }

func (Standard) Label() string { return "Standard Shipping" }

// Express always charges ExpressFee.
type Express struct{}

func (Express) Surcharge(pricing.Money) pricing.Money { return ExpressFee }

func (Express) DeliveryDays() int { return 2 }

func (Express) Label() string { return "Express Shipping" }
