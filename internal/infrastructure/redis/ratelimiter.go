package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Counter bump and TTL read in one round trip. The first hit in a window
// arms the expiry; later hits only read it back.
const fixedWindowScript = `
local c = redis.call("INCR", KEYS[1])
if c == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {c, ttl}
`

// FixedWindowLimiter counts hits per key within a window. Callers bake
// identity, route, and window bucket into the key.
type FixedWindowLimiter struct {
	rdb *goredis.Client
}

func NewFixedWindowLimiter(c *Client) *FixedWindowLimiter {
	l := &FixedWindowLimiter{}
	if c != nil {
		l.rdb = c.rdb
	}
	return l
}

// Decision is one limiter verdict plus the numbers callers surface in
// headers or logs.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration // 0 when allowed
	ResetAt    time.Time     // best-effort window end
	Count      int
}

func allowAll(limit int) Decision {
	return Decision{Allowed: true, Limit: limit, Remaining: limit}
}

// AllowFixedWindow records a hit under key and reports whether it fit the
// budget. A nil client or non-positive limit disables limiting entirely.
func (l *FixedWindowLimiter) AllowFixedWindow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	if limit <= 0 || l.rdb == nil {
		return allowAll(limit), nil
	}
	if window <= 0 {
		window = time.Minute
	}

	res, err := l.rdb.Eval(ctx, fixedWindowScript, []string{key}, window.Milliseconds()).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit redis eval: %w", err)
	}

	arr, ok := res.([]any)
	if !ok || len(arr) != 2 {
		return Decision{}, fmt.Errorf("ratelimit redis eval: unexpected result type")
	}
	count := int(arr[0].(int64))
	ttl := time.Duration(arr[1].(int64)) * time.Millisecond

	dec := Decision{
		Allowed: count <= limit,
		Limit:   limit,
		Count:   count,
		ResetAt: time.Now().Add(ttl),
	}
	if rem := limit - count; rem > 0 {
		dec.Remaining = rem
	}
	if !dec.Allowed {
		dec.RetryAfter = ttl
		if ttl <= 0 {
			dec.RetryAfter = window
		}
	}

	return dec, nil
}
