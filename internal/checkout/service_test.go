package checkout_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-console/internal/checkout"
	"github.com/noah-isme/toko-console/internal/common"
	"github.com/noah-isme/toko-console/internal/events"
	"github.com/noah-isme/toko-console/internal/order"
	"github.com/noah-isme/toko-console/internal/payment"
	"github.com/noah-isme/toko-console/internal/pricing"
	"github.com/noah-isme/toko-console/internal/repo"
	"github.com/noah-isme/toko-console/internal/shipping"
	"github.com/noah-isme/toko-console/internal/user"
)

type decliningGateway struct{ calls int }

func (d *decliningGateway) Settle(context.Context, pricing.Money) (payment.Settlement, error) {
	d.calls++
	return payment.Settlement{}, payment.ErrDeclined
}

func (*decliningGateway) Label() string { return "Declining" }

type fixture struct {
	store    *repo.Store
	mail     *common.InMemoryEmail
	journal  *events.Journal
	svc      *checkout.Service
	customer *user.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := repo.New(repo.Options{})
	mail := &common.InMemoryEmail{}
	journal := &events.Journal{}
	customer, err := user.New(user.Customer, store.NextUserID(), "buyer@example.com", "buyer", "pw")
	require.NoError(t, err)
	store.AddUser(customer)
	return fixture{
		store:    store,
		mail:     mail,
		journal:  journal,
		svc:      &checkout.Service{Store: store, Mail: mail, Events: &events.Bus{Journal: journal}},
		customer: customer,
	}
}

func TestPlaceDiscountedItemWithStandardShipping(t *testing.T) {
	f := newFixture(t)
	item := pricing.Discount(pricing.NewItem("a", "Jacket", "outerwear", pricing.Amount("40.00")), pricing.Amount("20"))
	f.customer.Account.Cart.Add(item)

	receipt, err := f.svc.Place(context.Background(), f.customer, payment.Card{Number: "4111111111111111"}, shipping.Standard{})
	require.NoError(t, err)

	require.Equal(t, "order1", receipt.OrderID)
	require.True(t, pricing.Amount("32.00").Equal(receipt.Subtotal))
	require.True(t, pricing.Amount("5.99").Equal(receipt.Surcharge))
	require.True(t, pricing.Amount("37.99").Equal(receipt.Total))
	require.Equal(t, "Credit Card", receipt.PaymentLabel)
	require.Equal(t, "Standard Shipping", receipt.ShippingLabel)
	require.Equal(t, 5, receipt.DeliveryDays)
	require.NotEmpty(t, receipt.Reference)

	placed, ok := f.store.Order("order1")
	require.True(t, ok)
	require.Equal(t, order.Paid, placed.Status())
	require.True(t, receipt.Total.Equal(placed.Total()))
	require.Len(t, placed.Items(), 1)
	require.Equal(t, 1, placed.Observers())

	require.True(t, f.customer.Account.Cart.Empty())
	require.Len(t, f.customer.Account.History(), 1)

	require.Len(t, f.mail.Outbox, 1)
	require.Equal(t, "buyer@example.com", f.mail.Outbox[0].To)
	require.Equal(t, "Order order1 updated to: PAID", f.mail.Outbox[0].Body)

	require.Len(t, f.journal.Topic(events.TopicOrderPaid), 1)
}

func TestPlaceWithExpressShipping(t *testing.T) {
	f := newFixture(t)
	f.customer.Account.Cart.Add(pricing.NewItem("a", "Boots", "shoes", pricing.Amount("60.00")))

	receipt, err := f.svc.Place(context.Background(), f.customer, payment.Wallet{Email: f.customer.Email}, shipping.Express{})
	require.NoError(t, err)
	require.True(t, pricing.Amount("72.99").Equal(receipt.Total))
	require.Equal(t, "PayPal", receipt.PaymentLabel)
}

func TestPlaceRejectsEmptyCart(t *testing.T) {
	f := newFixture(t)
	before := f.store.Stats()

	_, err := f.svc.Place(context.Background(), f.customer, payment.Card{}, shipping.Standard{})
	require.ErrorIs(t, err, checkout.ErrEmptyCart)
	require.Equal(t, before, f.store.Stats())
	require.Empty(t, f.mail.Outbox)
	require.Equal(t, "order1", f.store.NextOrderID(), "no order id may be consumed")
}

func TestPlaceRejectsAdministrator(t *testing.T) {
	f := newFixture(t)
	admin, ok := f.store.User(repo.DefaultAdminID)
	require.True(t, ok)

	_, err := f.svc.Place(context.Background(), admin, payment.Card{}, shipping.Standard{})
	require.ErrorIs(t, err, checkout.ErrNotCustomer)
	_, err = f.svc.Place(context.Background(), nil, payment.Card{}, shipping.Standard{})
	require.ErrorIs(t, err, checkout.ErrNotCustomer)
}

func TestPlaceKeepsCartWhenPaymentFails(t *testing.T) {
	f := newFixture(t)
	f.customer.Account.Cart.Add(pricing.NewItem("a", "Tee", "top", pricing.Amount("10")))
	gateway := &decliningGateway{}

	_, err := f.svc.Place(context.Background(), f.customer, gateway, shipping.Standard{})
	require.ErrorIs(t, err, payment.ErrDeclined)
	require.Equal(t, "payment_failed", common.AppErrorCode(err))
	require.Equal(t, 1, gateway.calls)

	require.Empty(t, f.store.Orders())
	require.Equal(t, 1, f.customer.Account.Cart.Len())
	require.Empty(t, f.customer.Account.History())
	require.Empty(t, f.mail.Outbox)
	require.Len(t, f.journal.Topic(events.TopicPaymentFailed), 1)
}
