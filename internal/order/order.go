package order

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/noah-isme/toko-console/internal/obs"
	"github.com/noah-isme/toko-console/internal/payment"
	"github.com/noah-isme/toko-console/internal/pricing"
	"github.com/noah-isme/toko-console/internal/shipping"
)

// Observer receives order status notifications. Implementations must be
// comparable (typically pointers) so they can be removed again.
type Observer interface {
	Notify(ctx context.Context, message string) error
}

// Order aggregates the items, total, chosen policies and lifecycle of a
// purchase. It also fans status changes out to its observers. State is
// guarded by mu so readers such as store stats may run alongside a
// transition; observers are notified outside the lock.
type Order struct {
	id         string
	customerID string
	createdAt  time.Time

	mu        sync.RWMutex
	items     []pricing.Item
	total     pricing.Money
	status    Status
	payment   payment.Method
	shipping  shipping.Method
	observers []Observer
}

// New returns a pending order with no items and no observers.
func New(id, customerID string) *Order {
	return &Order{
		id:         id,
		customerID: customerID,
		status:     Pending,
		createdAt:  time.Now().UTC(),
	}
}

func (o *Order) ID() string           { return o.id }
func (o *Order) CustomerID() string   { return o.customerID }
func (o *Order) CreatedAt() time.Time { return o.createdAt }

func (o *Order) Total() pricing.Money {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.total
}

func (o *Order) Status() Status {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.status
}

func (o *Order) Payment() payment.Method {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.payment
}

func (o *Order) Shipping() shipping.Method {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.shipping
}

// Items returns a copy of the item snapshot.
func (o *Order) Items() []pricing.Item {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]pricing.Item(nil), o.items...)
}

// AttachItems replaces the snapshot with a copy of items.
func (o *Order) AttachItems(items []pricing.Item) {
	cp := append(make([]pricing.Item, 0, len(items)), items...)
	o.mu.Lock()
	o.items = cp
	o.mu.Unlock()
}

func (o *Order) SetTotal(total pricing.Money) {
	o.mu.Lock()
	o.total = total
	o.mu.Unlock()
}

func (o *Order) SetPayment(m payment.Method) {
	o.mu.Lock()
	o.payment = m
	o.mu.Unlock()
}

func (o *Order) SetShipping(m shipping.Method) {
	o.mu.Lock()
	o.shipping = m
	o.mu.Unlock()
}

// RegisterObserver appends observer to the notification list.
func (o *Order) RegisterObserver(observer Observer) {
	if observer == nil {
		return
	}
	o.mu.Lock()
	o.observers = append(o.observers, observer)
	o.mu.Unlock()
}

// RemoveObserver drops the first registration of observer. Unknown observers are ignored.
func (o *Order) RemoveObserver(observer Observer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, existing := range o.observers {
		if existing == observer {
			o.observers = append(o.observers[:i:i], o.observers[i+1:]...)
			return
		}
	}
}

// Observers returns the number of registered observers.
func (o *Order) Observers() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.observers)
}

// TransitionTo overwrites the status without any guard and notifies every
// observer in registration order. Re-entering the current status notifies
// again. Observer failures never stop delivery or roll the status back; they
// are joined and returned.
func (o *Order) TransitionTo(ctx context.Context, status Status) error {
	o.mu.Lock()
	o.status = status
	observers := append([]Observer(nil), o.observers...)
	o.mu.Unlock()
	return o.announce(ctx, status, observers)
}

// Advance moves the order one step forward. Any other target is rejected with
// a *TransitionError and the status is left untouched. The check and the
// status change happen under one lock.
func (o *Order) Advance(ctx context.Context, next Status) error {
	o.mu.Lock()
	if !CanTransition(o.status, next) {
		from := o.status
		o.mu.Unlock()
		return &TransitionError{From: from, To: next}
	}
	o.status = next
	observers := append([]Observer(nil), o.observers...)
	o.mu.Unlock()
	return o.announce(ctx, next, observers)
}

// Ship moves a paid order to Shipped.
func (o *Order) Ship(ctx context.Context) error {
	return o.Advance(ctx, Shipped)
}

func (o *Order) announce(ctx context.Context, status Status, observers []Observer) error {
	obs.Inc(obs.OrderTransitionsTotal, status.String())
	message := fmt.Sprintf("Order %s updated to: %s", o.id, status)
	var joined error
	for _, observer := range observers {
		err := observer.Notify(ctx, message)
		obs.Inc(obs.NotificationsTotal, obs.Result(err))
		if err != nil {
			joined = errors.Join(joined, fmt.Errorf("order %s: notify: %w", o.id, err))
		}
	}
	return joined
}
