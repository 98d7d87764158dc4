package repo

import (
	"fmt"
	"strings"
	"sync"

	"github.com/noah-isme/toko-console/internal/order"
	"github.com/noah-isme/toko-console/internal/pricing"
	"github.com/noah-isme/toko-console/internal/user"
)

// Default administrator seeded into every store.
const (
	DefaultAdminID       = "admin"
	DefaultAdminEmail    = "admin@shop.com"
	DefaultAdminNickname = "admin"
	DefaultAdminPassword = "admin123"
)

// PasswordVerifier checks a password against a stored credential.
type PasswordVerifier interface {
	Verify(password, credential string) (bool, error)
}

// Options configures a new Store.
type Options struct {
	AdminEmail    string
	AdminNickname string
	// AdminCredential is stored verbatim; hash it first when Verifier expects hashes.
	AdminCredential string
	// Verifier checks passwords in Authenticate. Nil means exact equality.
	Verifier PasswordVerifier
}

// Stats is a point-in-time count of the store contents.
type Stats struct {
	Users           int `json:"users"`
	Items           int `json:"items"`
	Orders          int `json:"orders"`
	PendingShipment int `json:"pendingShipment"`
}

// Store is the authoritative in-memory collection of users, catalog items and
// orders. It is safe for concurrent use; every scan-then-mutate sequence runs
// under one lock.
type Store struct {
	mu          sync.Mutex
	users       []*user.User
	items       []pricing.Item
	orders      []*order.Order
	nextUserID  int
	nextOrderID int
	verifier    PasswordVerifier
}

// New constructs a store seeded with a single administrator.
func New(opts Options) *Store {
	s := &Store{nextUserID: 1, nextOrderID: 1, verifier: opts.Verifier}
	admin, _ := user.New(user.Administrator, DefaultAdminID,
		valueOrDefault(opts.AdminEmail, DefaultAdminEmail),
		valueOrDefault(opts.AdminNickname, DefaultAdminNickname),
		valueOrDefault(opts.AdminCredential, DefaultAdminPassword),
	)
	s.users = append(s.users, admin)
	return s
}

// NextUserID returns the next user identifier, e.g. "user3".
func (s *Store) NextUserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("user%d", s.nextUserID)
	s.nextUserID++
	return id
}

// NextOrderID returns the next order identifier, e.g. "order7".
func (s *Store) NextOrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("order%d", s.nextOrderID)
	s.nextOrderID++
	return id
}

// AddUser appends u.
func (s *Store) AddUser(u *user.User) {
	if u == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
}

// User returns the first user with id.
func (s *Store) User(id string) (*user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return nil, false
}

// Authenticate returns the first user whose email or nickname equals login and
// whose credential matches password.
func (s *Store) Authenticate(login, password string) (*user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email != login && u.Nickname != login {
			continue
		}
		if s.passwordMatches(password, u.Credential) {
			return u, true
		}
	}
	return nil, false
}

func (s *Store) passwordMatches(password, credential string) bool {
	if s.verifier == nil {
		return password == credential
	}
	ok, err := s.verifier.Verify(password, credential)
	return err == nil && ok
}

// UpsertItem replaces the item with the same id or appends it. The stored item
// always ends up last in the inventory.
func (s *Store) UpsertItem(item pricing.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeItemLocked(item.ID())
	s.items = append(s.items, item)
}

// RemoveItem deletes the item with id and reports whether it existed.
func (s *Store) RemoveItem(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeItemLocked(id)
}

func (s *Store) removeItemLocked(id string) bool {
	for i, it := range s.items {
		if it.ID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Item returns the catalog item with id.
func (s *Store) Item(id string) (pricing.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID() == id {
			return it, true
		}
	}
	return pricing.Item{}, false
}

// Inventory returns a copy of the catalog.
func (s *Store) Inventory() []pricing.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]pricing.Item(nil), s.items...)
}

// AddOrder records o. Orders are never deleted.
func (s *Store) AddOrder(o *order.Order) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, o)
}

// Order returns the first order with id.
func (s *Store) Order(id string) (*order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID() == id {
			return o, true
		}
	}
	return nil, false
}

// Orders returns every order in placement order.
func (s *Store) Orders() []*order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*order.Order(nil), s.orders...)
}

// OrdersByCustomer returns the orders placed by customerID.
func (s *Store) OrdersByCustomer(customerID string) []*order.Order {
	return s.filterOrders(func(o *order.Order) bool { return o.CustomerID() == customerID })
}

// PendingShipment returns the paid orders that await shipment.
func (s *Store) PendingShipment() []*order.Order {
	return s.filterOrders(func(o *order.Order) bool { return o.Status() == order.Paid })
}

func (s *Store) filterOrders(keep func(*order.Order) bool) []*order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*order.Order{}
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

// Stats counts the current contents.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := Stats{Users: len(s.users), Items: len(s.items), Orders: len(s.orders)}
	for _, o := range s.orders {
		if o.Status() == order.Paid {
			stats.PendingShipment++
		}
	}
	return stats
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
