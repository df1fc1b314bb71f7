package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client wraps a go-redis connection so the stores in this package share one
// pool and the rest of the codebase never imports go-redis directly.
type Client struct {
	rdb *goredis.Client
}

func New(addr, password string, db int) *Client {
	opts := &goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{rdb: goredis.NewClient(opts)}
}

// Ping bounds its own timeout; bootstrap calls it to decide between redis
// and the in-memory fallbacks.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.rdb.Ping(pingCtx).Err()
}

func (c *Client) Close() error { return c.rdb.Close() }
