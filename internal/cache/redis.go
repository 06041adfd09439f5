package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis wraps a go-redis client behind the Store contract. Every backend
// error is logged and degraded: reads become misses, writes become no-ops.
type Redis struct {
	rdb *redis.Client
}

// NewRedis parses url (redis://...) and returns a Store backed by it. The
// connection is lazy; a dead server surfaces per-operation, not here.
func NewRedis(url string) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	opt.MaxRetries = 2
	return &Redis{rdb: redis.NewClient(opt)}, nil
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[cache] redis get %s: %v", key, err)
		}
		return nil, false
	}
	return b, true
}

func (c *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("[cache] redis set %s: %v", key, err)
	}
}

func (c *Redis) Delete(ctx context.Context, key string) {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		log.Printf("[cache] redis del %s: %v", key, err)
	}
}

func (c *Redis) Close() error { return c.rdb.Close() }
