package redisclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// commands is the subset of redis.Cmdable the cache needs.
type commands interface {
	redis.Scripter
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Cache stores JSON encoded values under plain string keys, next to a
// "<key>:version" counter. It satisfies clinic.Cache.
type Cache struct {
	client commands
}

func NewCache(client commands) *Cache {
	return &Cache{client: client}
}

func versionKey(key string) string {
	return key + ":version"
}

// Get decodes the value stored at key into dest. A missing key is a miss, not
// an error.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// Version returns how many times key was invalidated, 0 when never.
func (c *Cache) Version(ctx context.Context, key string) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(key)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get %s: %w", versionKey(key), err)
	}
	return v, nil
}

// KEYS[1] value key, KEYS[2] version key.
// ARGV[1] expected version, ARGV[2] payload, ARGV[3] ttl in ms (0 keeps forever).
var setIfVersionScript = redis.NewScript(`
local current = redis.call("GET", KEYS[2]) or "0"
if current ~= ARGV[1] then
  return 0
end
if ARGV[3] == "0" then
  redis.call("SET", KEYS[1], ARGV[2])
else
  redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
end
return 1
`)

// SetIfVersion stores value under key only when the key's version still equals
// version. The check and the write run as one script on the server.
func (c *Cache) SetIfVersion(ctx context.Context, key string, version int64, value any, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", key, err)
	}

	stored, err := setIfVersionScript.Run(ctx, c.client,
		[]string{key, versionKey(key)},
		strconv.FormatInt(version, 10), string(data), strconv.FormatInt(ttl.Milliseconds(), 10),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("redis set %s: %w", key, err)
	}
	return stored == 1, nil
}

// KEYS[1] value key, KEYS[2] version key.
var invalidateScript = redis.NewScript(`
redis.call("INCR", KEYS[2])
return redis.call("DEL", KEYS[1])
`)

// Invalidate bumps the key's version and drops the cached value, so fills
// that loaded before this call are refused.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	if err := invalidateScript.Run(ctx, c.client, []string{key, versionKey(key)}).Err(); err != nil {
		return fmt.Errorf("redis invalidate %s: %w", key, err)
	}
	return nil
}
