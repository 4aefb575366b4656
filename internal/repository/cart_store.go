package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"optiops/internal/model"

	"github.com/redis/go-redis/v9"
)

// Carts are session state, not durable data: they expire on their own and
// only become rows at checkout.
const cartTTL = 24 * time.Hour

// CartStore holds each user's session cart as a JSON blob in Redis.
type CartStore interface {
	Get(ctx context.Context, userID uint) ([]model.CartItem, error)
	Save(ctx context.Context, userID uint, items []model.CartItem) error
	Clear(ctx context.Context, userID uint) error
}

type cartStore struct{ rdb *redis.Client }

func NewCartStore(rdb *redis.Client) CartStore { return &cartStore{rdb: rdb} }

func cartKey(userID uint) string { return fmt.Sprintf("cart:%d", userID) }

func (s *cartStore) Get(ctx context.Context, userID uint) ([]model.CartItem, error) {
	raw, err := s.rdb.Get(ctx, cartKey(userID)).Bytes()
	if err == redis.Nil {
		return []model.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	var items []model.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// Corrupt cart blob — treat as empty rather than wedging the user.
		return []model.CartItem{}, nil
	}
	return items, nil
}

func (s *cartStore) Save(ctx context.Context, userID uint, items []model.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, cartKey(userID), raw, cartTTL).Err()
}

func (s *cartStore) Clear(ctx context.Context, userID uint) error {
	return s.rdb.Del(ctx, cartKey(userID)).Err()
}
