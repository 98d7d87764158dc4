package repo_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-console/internal/order"
	"github.com/noah-isme/toko-console/internal/pricing"
	"github.com/noah-isme/toko-console/internal/repo"
	"github.com/noah-isme/toko-console/internal/user"
)

type prefixVerifier struct{}

func (prefixVerifier) Verify(password, credential string) (bool, error) {
	return credential == "hashed:"+password, nil
}

func TestOrderIDsAreSequential(t *testing.T) {
	store := repo.New(repo.Options{})
	for k := 1; k <= 5; k++ {
		require.Equal(t, fmt.Sprintf("order%d", k), store.NextOrderID())
	}
	require.Equal(t, "user1", store.NextUserID())
	require.Equal(t, "user2", store.NextUserID())
}

func TestIDsAreUniqueUnderConcurrency(t *testing.T) {
	store := repo.New(repo.Options{})
	const n = 200
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- store.NextOrderID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	require.Len(t, seen, n)
}

func TestSeedsAdministrator(t *testing.T) {
	store := repo.New(repo.Options{})
	admin, ok := store.User(repo.DefaultAdminID)
	require.True(t, ok)
	require.True(t, admin.IsAdmin())

	byEmail, ok := store.Authenticate("admin@shop.com", "admin123")
	require.True(t, ok)
	require.Same(t, admin, byEmail)
	byNick, ok := store.Authenticate("admin", "admin123")
	require.True(t, ok)
	require.Same(t, admin, byNick)

	_, ok = store.Authenticate("admin", "wrong")
	require.False(t, ok)
	_, ok = store.Authenticate("nobody", "admin123")
	require.False(t, ok)
}

func TestAuthenticateUsesVerifier(t *testing.T) {
	store := repo.New(repo.Options{AdminCredential: "hashed:s3cret", Verifier: prefixVerifier{}})
	_, ok := store.Authenticate("admin", "s3cret")
	require.True(t, ok)
	_, ok = store.Authenticate("admin", "hashed:s3cret")
	require.False(t, ok)
}

func TestUpsertItemIsLastWriterWins(t *testing.T) {
	store := repo.New(repo.Options{})
	store.UpsertItem(pricing.NewItem("a", "Tee", "top", pricing.Amount("10")))
	store.UpsertItem(pricing.NewItem("b", "Cap", "hat", pricing.Amount("7")))
	store.UpsertItem(pricing.NewItem("a", "Tee v2", "top", pricing.Amount("11")))

	inventory := store.Inventory()
	require.Len(t, inventory, 2)
	require.Equal(t, "b", inventory[0].ID())
	require.Equal(t, "Tee v2", inventory[1].Name())

	item, ok := store.Item("a")
	require.True(t, ok)
	require.True(t, pricing.Amount("11").Equal(item.Price()))

	inventory[0] = pricing.Item{}
	require.Equal(t, "b", store.Inventory()[0].ID(), "Inventory must return a copy")

	require.True(t, store.RemoveItem("a"))
	require.False(t, store.RemoveItem("a"))
	_, ok = store.Item("a")
	require.False(t, ok)
}

func TestOrderQueries(t *testing.T) {
	ctx := context.Background()
	store := repo.New(repo.Options{})
	customer, err := user.New(user.Customer, store.NextUserID(), "buyer@example.com", "buyer", "pw")
	require.NoError(t, err)
	store.AddUser(customer)

	paid := order.New(store.NextOrderID(), customer.ID)
	require.NoError(t, paid.TransitionTo(ctx, order.Paid))
	shipped := order.New(store.NextOrderID(), customer.ID)
	require.NoError(t, shipped.TransitionTo(ctx, order.Paid))
	require.NoError(t, shipped.Ship(ctx))
	other := order.New(store.NextOrderID(), "user99")
	require.NoError(t, other.TransitionTo(ctx, order.Paid))

	store.AddOrder(paid)
	store.AddOrder(shipped)
	store.AddOrder(other)

	require.Len(t, store.Orders(), 3)
	require.Len(t, store.OrdersByCustomer(customer.ID), 2)
	require.Empty(t, store.OrdersByCustomer("ghost"))

	pending := store.PendingShipment()
	require.Len(t, pending, 2)
	require.Equal(t, paid.ID(), pending[0].ID())
	require.Equal(t, other.ID(), pending[1].ID())

	found, ok := store.Order(shipped.ID())
	require.True(t, ok)
	require.Same(t, shipped, found)
	_, ok = store.Order("order404")
	require.False(t, ok)

	stats := store.Stats()
	require.Equal(t, repo.Stats{Users: 2, Items: 0, Orders: 3, PendingShipment: 2}, stats)
}

func TestStatsReadsWhileOrdersShip(t *testing.T) {
	ctx := context.Background()
	store := repo.New(repo.Options{})
	const n = 50
	orders := make([]*order.Order, 0, n)
	for i := 0; i < n; i++ {
		o := order.New(store.NextOrderID(), "user1")
		require.NoError(t, o.TransitionTo(ctx, order.Paid))
		store.AddOrder(o)
		orders = append(orders, o)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			_ = store.Stats()
			_ = store.PendingShipment()
		}
	}()
	for _, o := range orders {
		require.NoError(t, o.Ship(ctx))
	}
	<-done

	require.Equal(t, 0, store.Stats().PendingShipment)
	require.Empty(t, store.PendingShipment())
}
