package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Profile is the cached public view of a user.
type Profile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// ProfileCache keeps user profiles in Redis under user:profile:<id>.
// A nil *ProfileCache is a valid, always-missing cache.
type ProfileCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProfileCache(rdb *redis.Client, ttl time.Duration) *ProfileCache {
	if rdb == nil {
		return nil
	}
	return &ProfileCache{rdb: rdb, ttl: ttl}
}

func profileKey(userID string) string {
	return "user:profile:" + userID
}

// Get returns the cached profile; the bool is false on a miss.
func (c *ProfileCache) Get(ctx context.Context, userID string) (Profile, bool, error) {
	var p Profile
	if c == nil {
		return p, false, nil
	}
	res, err := c.rdb.Get(ctx, profileKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return p, false, nil
	}
	if err != nil {
		return p, false, err
	}
	if err := json.Unmarshal(res, &p); err != nil {
		return p, false, err
	}
	return p, true, nil
}

func (c *ProfileCache) Set(ctx context.Context, p Profile) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, profileKey(p.ID), b, c.ttl).Err()
}

func (c *ProfileCache) Invalidate(ctx context.Context, userID string) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, profileKey(userID)).Err()
}
