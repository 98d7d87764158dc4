package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/toko-console/internal/common"
	"github.com/noah-isme/toko-console/internal/events"
	"github.com/noah-isme/toko-console/internal/pricing"
	"github.com/noah-isme/toko-console/internal/repo"
)

// ErrItemNotFound is returned when no catalog item has the requested id.
var ErrItemNotFound = errors.New("item not found")

// ItemInput carries the fields an administrator types in for a new item.
type ItemInput struct {
	ID       string        `validate:"required"`
	Name     string        `validate:"required"`
	Category string        `validate:"omitempty,max=64"`
	Price    pricing.Money `validate:"-"`
}

// Service administers the catalog held by the store.
type Service struct {
	store    *repo.Store
	events   *events.Bus
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewService wires a catalog Service. bus may be nil.
func NewService(store *repo.Store, bus *events.Bus, logger zerolog.Logger) *Service {
	return &Service{store: store, events: bus, validate: validator.New(), logger: logger}
}

// AddItem validates in and stores it as a base item, replacing any item with
// the same id.
func (s *Service) AddItem(ctx context.Context, in ItemInput) (pricing.Item, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if err := s.validate.Struct(in); err != nil {
		return pricing.Item{}, common.NewAppError("invalid_input", "Item id and name are required.", err)
	}
	if in.Price.IsNegative() {
		return pricing.Item{}, common.NewAppError("invalid_input", "Price must not be negative.", nil)
	}
	item := pricing.NewItem(in.ID, in.Name, in.Category, in.Price)
	s.upsert(ctx, item)
	return item, nil
}

// RemoveItem deletes the item with id.
func (s *Service) RemoveItem(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if !s.store.RemoveItem(id) {
		return ErrItemNotFound
	}
	s.logger.Info().Str("item_id", id).Msg("item removed")
	s.emit(ctx, events.TopicItemRemoved, id, map[string]any{"itemId": id})
	return nil
}

// ApplyDiscount wraps the stored item in one more discount layer and stores
// the result under the same id. percent is clamped to the allowed range.
func (s *Service) ApplyDiscount(ctx context.Context, id string, percent pricing.Money) (pricing.Item, error) {
	current, ok := s.store.Item(strings.TrimSpace(id))
	if !ok {
		return pricing.Item{}, ErrItemNotFound
	}
	discounted := pricing.Discount(current, percent)
	s.upsert(ctx, discounted)
	return discounted, nil
}

// Inventory lists the catalog in insertion order.
func (s *Service) Inventory() []pricing.Item {
	return s.store.Inventory()
}

// Item returns the catalog item with id.
func (s *Service) Item(id string) (pricing.Item, error) {
	item, ok := s.store.Item(strings.TrimSpace(id))
	if !ok {
		return pricing.Item{}, ErrItemNotFound
	}
	return item, nil
}

func (s *Service) upsert(ctx context.Context, item pricing.Item) {
	s.store.UpsertItem(item)
	s.logger.Info().
		Str("item_id", item.ID()).
		Str("price", item.Price().StringFixed(2)).
		Int("discount_layers", item.Layers()).
		Msg("item stored")
	s.emit(ctx, events.TopicItemUpserted, item.ID(), map[string]any{
		"itemId":      item.ID(),
		"description": item.Description(),
		"price":       item.Price().StringFixed(2),
	})
}

func (s *Service) emit(ctx context.Context, topic, id string, payload any) {
	if _, err := s.events.Emit(ctx, topic, id, payload); err != nil {
		s.logger.Warn().Err(err).Str("topic", topic).Msg("emit domain event")
	}
}
