package user

import (
	"fmt"

	"github.com/noah-isme/toko-console/internal/cart"
	"github.com/noah-isme/toko-console/internal/order"
)

// Role discriminates the user variants.
type Role int

const (
	// Administrator manages the catalog and ships orders.
	Administrator Role = iota + 1
	// Customer shops and owns a cart and an order history.
	Customer
)

func (r Role) String() string {
	switch r {
	case Administrator:
		return "ADMINISTRATOR"
	case Customer:
		return "CUSTOMER"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// User is either an administrator or a customer. Only customers carry an
// Account.
type User struct {
	ID         string
	Email      string
	Nickname   string
	Credential string
	Role       Role
	Account    *Account
}

// Account holds the customer-only state.
type Account struct {
	Cart    cart.Cart
	history []*order.Order
}

// AddOrder appends o to the personal history.
func (a *Account) AddOrder(o *order.Order) {
	a.history = append(a.history, o)
}

// History returns the customer's orders in placement order.
func (a *Account) History() []*order.Order {
	return append([]*order.Order(nil), a.history...)
}

// New is the user factory keyed on role. Credential is stored as given; the
// caller decides whether it is hashed.
func New(role Role, id, email, nickname, credential string) (*User, error) {
	u := &User{ID: id, Email: email, Nickname: nickname, Credential: credential, Role: role}
	switch role {
	case Administrator:
	case Customer:
		u.Account = &Account{}
	default:
		return nil, fmt.Errorf("user: unknown role %d", int(role))
	}
	return u, nil
}

// IsAdmin reports whether u is an administrator.
func (u *User) IsAdmin() bool { return u != nil && u.Role == Administrator }

// IsCustomer reports whether u is a customer with an account.
func (u *User) IsCustomer() bool { return u != nil && u.Role == Customer && u.Account != nil }
