package redisad

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"place_sentiment/internal/adapters/observability"
)

const keyPrefix = "placesent:inflight:"

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Guard is a domain.Guard shared by every replica that talks to the same Redis.
type Guard struct{ c *redis.Client }

func New(addr, pass string, db int) *Guard {
	return &Guard{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (g *Guard) Ping(ctx context.Context) error { return g.c.Ping(ctx).Err() }

func (g *Guard) Close() error { return g.c.Close() }

func (g *Guard) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := g.c.SetNX(ctx, keyPrefix+key, token, ttl).Result()
	if err != nil {
		observability.ObserveGuard("redis", "error")
		return func() {}, false, err
	}
	if !ok {
		observability.ObserveGuard("redis", "busy")
		return func() {}, false, nil
	}
	observability.ObserveGuard("redis", "acquired")

	release := func() {
		// the caller's ctx may already be gone when releasing
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, g.c, []string{keyPrefix + key}, token).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("guard release failed")
			return
		}
		observability.ObserveGuard("redis", "release")
	}
	return release, true, nil
}
