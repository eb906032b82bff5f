package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage persists the full line-item collection. Save replaces the previous
// snapshot wholesale; concurrent writers to the same key are last-writer-wins.
type Storage interface {
	Load() ([]LineItem, error)
	Save(items []LineItem) error
}

const (
	cartKeyPrefix  = "cart:"
	cartTTL        = 30 * 24 * time.Hour
	storageTimeout = 5 * time.Second
)

// RedisStorage keeps a guest cart as a JSON blob under a fixed per-token key
type RedisStorage struct {
	client *redis.Client
	key    string
}

func NewRedisStorage(client *redis.Client, token string) *RedisStorage {
	return &RedisStorage{
		client: client,
		key:    cartKeyPrefix + token,
	}
}

func (s *RedisStorage) Load() ([]LineItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return items, nil
}

func (s *RedisStorage) Save(items []LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.key, data, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// MemoryStorage is an in-process Storage used in tests
type MemoryStorage struct {
	data []byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load() ([]LineItem, error) {
	if s.data == nil {
		return nil, nil
	}
	var items []LineItem
	if err := json.Unmarshal(s.data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return items, nil
}

func (s *MemoryStorage) Save(items []LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	s.data = data
	return nil
}

// Corrupt replaces the stored snapshot with undecodable bytes (test helper)
func (s *MemoryStorage) Corrupt() {
	s.data = []byte("{not json")
}
