package fulfillment

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/toko-console/internal/events"
	"github.com/noah-isme/toko-console/internal/obs"
	"github.com/noah-isme/toko-console/internal/order"
	"github.com/noah-isme/toko-console/internal/pricing"
	"github.com/noah-isme/toko-console/internal/repo"
)

// ErrOrderNotFound is returned when no order has the requested id.
var ErrOrderNotFound = errors.New("order not found")

// Pending is a paid order awaiting shipment.
type Pending struct {
	OrderID  string
	Customer string
	Total    pricing.Money
	Items    int
}

// Service lists and ships paid orders.
type Service struct {
	Store  *repo.Store
	Events *events.Bus
	Logger zerolog.Logger
}

// PendingShipments lists the PAID orders in placement order. Customer is the
// nickname when the customer is known, the id otherwise.
func (s *Service) PendingShipments() []Pending {
	orders := s.Store.PendingShipment()
	out := make([]Pending, 0, len(orders))
	for _, o := range orders {
		customer := o.CustomerID()
		if u, ok := s.Store.User(customer); ok && u.Nickname != "" {
			customer = u.Nickname
		}
		out = append(out, Pending{
			OrderID:  o.ID(),
			Customer: customer,
			Total:    o.Total(),
			Items:    len(o.Items()),
		})
	}
	return out
}

// Ship moves a PAID order to SHIPPED and notifies its observers. Orders in any
// other status are rejected with order.ErrInvalidTransition and left as they
// are. Observer failures are logged, not returned.
func (s *Service) Ship(ctx context.Context, orderID string) (err error) {
	ctx, span := obs.StartSpan(ctx, "fulfillment", "Fulfillment.Ship")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		obs.Inc(obs.ShipmentsTotal, obs.Result(err))
		span.End()
	}()

	orderID = strings.TrimSpace(orderID)
	span.SetAttributes(attribute.String("order.id", orderID))
	o, ok := s.Store.Order(orderID)
	if !ok {
		return ErrOrderNotFound
	}

	logger := s.Logger.With().Str("order_id", orderID).Logger()
	if notifyErr := o.Ship(logger.WithContext(ctx)); notifyErr != nil {
		if errors.Is(notifyErr, order.ErrInvalidTransition) {
			return notifyErr
		}
		logger.Warn().Err(notifyErr).Msg("order notification failed")
	}

	if _, emitErr := s.Events.Emit(ctx, events.TopicShipmentShipped, orderID, map[string]any{
		"orderId":  orderID,
		"customer": o.CustomerID(),
	}); emitErr != nil {
		logger.Warn().Err(emitErr).Msg("emit domain event")
	}
	logger.Info().Msg("order shipped")
	return nil
}
