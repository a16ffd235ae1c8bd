package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"glowbook/models"
	"glowbook/services/kvstore"

	"go.uber.org/zap"
)

const cartKeyPrefix = "cart:"

// DefaultCartService implements CartService on top of a key-value store,
// one JSON-serialized collection per user.
type DefaultCartService struct {
	Store  kvstore.Store
	Logger *zap.Logger
}

// NewDefaultCartService constructs the cart store.
func NewDefaultCartService(store kvstore.Store, logger *zap.Logger) *DefaultCartService {
	return &DefaultCartService{Store: store, Logger: logger}
}

func cartKey(userID string) string {
	return cartKeyPrefix + userID
}

func (s *DefaultCartService) load(ctx context.Context, userID string) ([]models.CartLineItem, error) {
	raw, err := s.Store.Get(ctx, cartKey(userID))
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for user %s: %w", userID, err)
	}
	var items []models.CartLineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to parse cart for user %s: %w", userID, err)
	}
	return items, nil
}

// persist writes the whole collection back. No batching, no transaction log;
// the last write wins.
func (s *DefaultCartService) persist(ctx context.Context, userID string, items []models.CartLineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart for user %s: %w", userID, err)
	}
	if err := s.Store.Set(ctx, cartKey(userID), string(data), 0); err != nil {
		return fmt.Errorf("failed to persist cart for user %s: %w", userID, err)
	}
	return nil
}

func (s *DefaultCartService) Add(ctx context.Context, userID string, item models.CartLineItem) error {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	items, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	found := false
	for i := range items {
		if items[i].ID == item.ID && items[i].StaffID == item.StaffID && items[i].Kind == item.Kind {
			items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, item)
	}

	s.Logger.Debug("cart add",
		zap.String("userID", userID),
		zap.String("itemID", item.ID),
		zap.String("staffID", item.StaffID))
	return s.persist(ctx, userID, items)
}

func (s *DefaultCartService) Remove(ctx context.Context, userID, itemID, staffID string) error {
	items, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, it := range items {
		if it.ID == itemID && it.StaffID == staffID {
			continue
		}
		kept = append(kept, it)
	}
	return s.persist(ctx, userID, kept)
}

func (s *DefaultCartService) SetQuantity(ctx context.Context, userID, itemID, staffID string, delta int) error {
	items, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].ID == itemID && items[i].StaffID == staffID {
			items[i].Quantity += delta
			if items[i].Quantity < 1 {
				items[i].Quantity = 1
			}
			break
		}
	}
	return s.persist(ctx, userID, items)
}

func (s *DefaultCartService) Items(ctx context.Context, userID string) ([]models.CartLineItem, error) {
	return s.load(ctx, userID)
}

func (s *DefaultCartService) GroupByStaff(ctx context.Context, userID string) (map[string]models.CartGroup, error) {
	items, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]models.CartGroup)
	for _, it := range items {
		g := groups[it.StaffID]
		switch it.Kind {
		case models.LineItemPackage:
			g.Packages = append(g.Packages, it)
		default:
			g.Services = append(g.Services, it)
		}
		groups[it.StaffID] = g
	}
	return groups, nil
}

func (s *DefaultCartService) RemoveBooked(ctx context.Context, userID, staffID string, booked []models.CartLineItem) error {
	items, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	bookedIDs := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		bookedIDs[b.ID] = struct{}{}
	}

	kept := items[:0]
	for _, it := range items {
		if _, ok := bookedIDs[it.ID]; ok && it.StaffID == staffID {
			continue
		}
		kept = append(kept, it)
	}
	return s.persist(ctx, userID, kept)
}
