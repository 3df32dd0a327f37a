package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pedroluizchagas/thv/internal/cart"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewRedis creates and validates a go-redis client connection.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	// Validate connectivity at startup
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

// cartTTL bounds how long an abandoned cart survives. Every save refreshes
// the window.
const cartTTL = 12 * time.Hour

// RedisCartStore keeps one cart per user as a JSON value under cart:{userID}.
type RedisCartStore struct {
	rdb *redis.Client
}

func NewRedisCartStore(rdb *redis.Client) *RedisCartStore {
	return &RedisCartStore{rdb: rdb}
}

func cartKey(userID uuid.UUID) string { return "cart:" + userID.String() }

// Get returns the user's cart, or an empty cart when none is stored.
func (s *RedisCartStore) Get(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	raw, err := s.rdb.Get(ctx, cartKey(userID)).Bytes()
	if err == redis.Nil {
		return cart.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		// Corrupted value: start over rather than brick the PDV session.
		log.Warn().Str("user_id", userID.String()).Err(err).Msg("discarding unreadable cart")
		return cart.New(), nil
	}
	return &c, nil
}

func (s *RedisCartStore) Save(ctx context.Context, userID uuid.UUID, c *cart.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, cartKey(userID), raw, cartTTL).Err(); err != nil {
		return fmt.Errorf("redis save cart: %w", err)
	}
	return nil
}

func (s *RedisCartStore) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.rdb.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis clear cart: %w", err)
	}
	return nil
}

// RedisCache is a small byte-value cache used by the public catalog.
// Failures degrade to cache misses; the catalog never breaks because Redis
// hiccuped.
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Str("key", key).Err(err).Msg("cache get failed")
		}
		return nil, false
	}
	return raw, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("cache set failed")
	}
}
