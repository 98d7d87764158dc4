package checkout

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/toko-console/internal/common"
	"github.com/noah-isme/toko-console/internal/events"
	"github.com/noah-isme/toko-console/internal/notify"
	"github.com/noah-isme/toko-console/internal/obs"
	"github.com/noah-isme/toko-console/internal/order"
	"github.com/noah-isme/toko-console/internal/payment"
	"github.com/noah-isme/toko-console/internal/pricing"
	"github.com/noah-isme/toko-console/internal/repo"
	"github.com/noah-isme/toko-console/internal/shipping"
	"github.com/noah-isme/toko-console/internal/user"
)

var (
	// ErrEmptyCart is returned when checkout is attempted with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNotCustomer is returned when the buyer has no customer account.
	ErrNotCustomer = errors.New("only customers can check out")
	// ErrNoPolicy is returned when the payment or shipping method is missing.
	ErrNoPolicy = errors.New("payment and shipping methods are required")
)

// Receipt summarises a successful checkout.
type Receipt struct {
	OrderID       string
	Subtotal      pricing.Money
	Surcharge     pricing.Money
	Total         pricing.Money
	PaymentLabel  string
	ShippingLabel string
	DeliveryDays  int
	Reference     string
}

// Service turns a customer's cart into a paid order.
type Service struct {
	Store  *repo.Store
	Mail   common.EmailSender
	Events *events.Bus
	Logger zerolog.Logger
}

// Place prices the cart, settles the total through pay and, on success,
// records a PAID order, appends it to the customer's history and clears the
// cart. A failed settlement leaves the store and the cart untouched.
func (s *Service) Place(ctx context.Context, customer *user.User, pay payment.Method, ship shipping.Method) (receipt Receipt, err error) {
	ctx, span := obs.StartSpan(ctx, "checkout", "Checkout.Place")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		obs.Inc(obs.CheckoutTotal, obs.Result(err))
		span.End()
	}()

	if !customer.IsCustomer() {
		return Receipt{}, ErrNotCustomer
	}
	account := customer.Account
	if account.Cart.Empty() {
		return Receipt{}, ErrEmptyCart
	}
	if pay == nil || ship == nil {
		return Receipt{}, ErrNoPolicy
	}

	items := account.Cart.Items()
	quote := pricing.Quote(items, ship)

	o := order.New(s.Store.NextOrderID(), customer.ID)
	o.AttachItems(items)
	o.SetTotal(quote.Total)
	o.SetPayment(pay)
	o.SetShipping(ship)
	o.RegisterObserver(notify.NewEmailObserver(customer.Email, s.mail()))

	span.SetAttributes(
		attribute.String("order.id", o.ID()),
		attribute.Int("order.items", len(items)),
		attribute.String("order.total", quote.Total.StringFixed(2)),
	)
	logger := s.Logger.With().Str("order_id", o.ID()).Str("customer_id", customer.ID).Logger()
	ctx = logger.WithContext(ctx)

	settlement, err := payment.Process(ctx, pay, quote.Total)
	if err != nil {
		s.emit(ctx, logger, events.TopicPaymentFailed, o.ID(), map[string]any{
			"orderId": o.ID(),
			"method":  pay.Label(),
			"total":   quote.Total.StringFixed(2),
		})
		return Receipt{}, common.NewAppError("payment_failed", "Payment failed. Your cart has been kept.", err)
	}

	if notifyErr := o.TransitionTo(ctx, order.Paid); notifyErr != nil {
		logger.Warn().Err(notifyErr).Msg("order notification failed")
	}
	s.Store.AddOrder(o)
	account.AddOrder(o)
	account.Cart.Clear()

	s.emit(ctx, logger, events.TopicOrderPaid, o.ID(), map[string]any{
		"orderId":   o.ID(),
		"customer":  customer.ID,
		"total":     quote.Total.StringFixed(2),
		"reference": settlement.Reference,
	})
	logger.Info().Str("total", quote.Total.StringFixed(2)).Msg("checkout completed")

	return Receipt{
		OrderID:       o.ID(),
		Subtotal:      quote.Subtotal,
		Surcharge:     quote.Shipping,
		Total:         quote.Total,
		PaymentLabel:  pay.Label(),
		ShippingLabel: ship.Label(),
		DeliveryDays:  ship.DeliveryDays(),
		Reference:     settlement.Reference,
	}, nil
}

func (s *Service) mail() common.EmailSender {
	if s.Mail == nil {
		return common.NopEmailSender{}
	}
	return s.Mail
}

func (s *Service) emit(ctx context.Context, logger zerolog.Logger, topic, aggregateID string, payload any) {
	if _, err := s.Events.Emit(ctx, topic, aggregateID, payload); err != nil {
		logger.Warn().Err(err).Str("topic", topic).Msg("emit domain event")
	}
}
