package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/toko-console/internal/pricing"
)

// ErrDeclined is returned by a method whose gateway refused the amount.
var ErrDeclined = errors.New("payment declined")

// Settlement describes an accepted payment.
type Settlement struct {
	Method    string
	Amount    pricing.Money
	Reference string
	SettledAt time.Time
}

// Method is a payment policy chosen at checkout. Settle is fallible: a non-nil
// error means nothing was charged.
type Method interface {
	Settle(ctx context.Context, amount pricing.Money) (Settlement, error)
	Label() string
}

// Card settles against a credit card. The simulation always succeeds.
type Card struct {
	Number string
}

func (c Card) Settle(_ context.Context, amount pricing.Money) (Settlement, error) {
	return accepted(c.Label(), amount), nil
}

func (Card) Label() string { return "Credit Card" }

// MaskedNumber returns the card number with everything but the last four
// digits hidden.
func (c Card) MaskedNumber() string {
	n := len(c.Number)
	if n <= 4 {
		return c.Number
	}
	masked := make([]byte, n)
	for i := range masked {
		if i < n-4 {
			masked[i] = '*'
		} else {
			masked[i] = c.Number[i]
		}
	}
	return string(masked)
}

// Wallet settles against a PayPal-style wallet bound to an account email. The
// simulation always succeeds.
type Wallet struct {
	Email string
}

func (w Wallet) Settle(_ context.Context, amount pricing.Money) (Settlement, error) {
	return accepted(w.Label(), amount), nil
}

func (Wallet) Label() string { return "PayPal" }

func accepted(method string, amount pricing.Money) Settlement {
	return Settlement{
		Method:    method,
		Amount:    amount,
		Reference: uuid.NewString(),
		SettledAt: time.Now().UTC(),
	}
}
