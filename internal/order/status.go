package order

import (
	"errors"
	"fmt"
)

// Status is the order lifecycle state.
type Status int

const (
	// Pending is the initial state, before payment.
	Pending Status = iota
	// Paid orders await shipment.
	Paid
	// Shipped orders are on their way.
	Shipped
	// Delivered is terminal.
	Delivered
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "PENDING"
	case Paid:
		return "PAID"
	case Shipped:
		return "SHIPPED"
	case Delivered:
		return "DELIVERED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ErrInvalidTransition is matched by every rejected guarded transition.
var ErrInvalidTransition = errors.New("invalid order status transition")

// TransitionError reports a rejected guarded transition.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition: cannot transition from %s to %s", e.From, e.To)
}

// Is makes errors.Is(err, ErrInvalidTransition) succeed.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// CanTransition reports whether next is the single forward step after current.
func CanTransition(current, next Status) bool {
	switch current {
	case Pending:
		return next == Paid
	case Paid:
		return next == Shipped
	case Shipped:
		return next == Delivered
	default:
		return false
	}
}
