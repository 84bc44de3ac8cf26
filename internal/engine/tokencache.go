package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// TokenExpiryBuffer is subtracted from a fetched token's reported
// expiry before it is cached, so a token with more than the buffer
// left leaves the cache before it expires (see Get for tokens with
// less). Mirrors the buffer
// constant used by the single-tier OAuth cache this was generalized
// from.
const TokenExpiryBuffer = 5 * time.Minute

// TokenFetcher performs the OAuth client_credentials exchange (or
// equivalent) for one connector and returns a fresh token plus its
// absolute expiry.
type TokenFetcher func(ctx context.Context) (token string, expiresAt time.Time, err error)

// TokenCache is a two-tier, read-through cache for connector bearer
// tokens: an in-process tier for sub-millisecond hits on the common
// path, backed by a distributed tier so that a fleet of stateless
// replicas does not each independently mint a fresh token for the same
// merchant credentials. Locking is double-checked per connector key: a
// lock-free read of the local tier for the common case, then a per-key
// mutex and a second local read on a miss, so one caller per key
// fetches.
type TokenCache struct {
	local *gocache.Cache
	redis *redis.Client

	mu      sync.RWMutex
	locks   map[string]*sync.Mutex
	locksMu sync.Mutex
}

// NewTokenCache builds a TokenCache. redisClient may be nil, in which
// case only the local tier is used (suitable for a single-replica
// deployment or tests).
func NewTokenCache(redisClient *redis.Client) *TokenCache {
	return &TokenCache{
		local: gocache.New(TokenExpiryBuffer, 2*TokenExpiryBuffer),
		redis: redisClient,
		locks: make(map[string]*sync.Mutex),
	}
}

func (c *TokenCache) keyLock(key string) *sync.Mutex {
	c.locksMu.Lock()
	defer c.locksMu.Unlock()
	l, ok := c.locks[key]
	if !ok {
		l = &sync.Mutex{}
		c.locks[key] = l
	}
	return l
}

// Get returns a valid cached token for key, fetching and populating
// both tiers on a miss via fetch. The buffer is subtracted from the
// fetched expiry before caching; a token whose remaining lifetime is
// already inside the buffer is still cached for one minute, so it can
// be returned after it has expired.
func (c *TokenCache) Get(ctx context.Context, key string, fetch TokenFetcher) (string, error) {
	if tok, ok := c.local.Get(key); ok {
		return tok.(string), nil
	}

	lock := c.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	// Double check: another goroutine may have populated the local tier
	// while we waited for the lock.
	if tok, ok := c.local.Get(key); ok {
		return tok.(string), nil
	}

	if c.redis != nil {
		if tok, err := c.redis.Get(ctx, redisKey(key)).Result(); err == nil && tok != "" {
			ttl, err := c.redis.TTL(ctx, redisKey(key)).Result()
			if err == nil && ttl > 0 {
				c.local.Set(key, tok, ttl)
				return tok, nil
			}
		}
	}

	token, expiresAt, err := fetch(ctx)
	if err != nil {
		return "", err
	}

	ttl := time.Until(expiresAt) - TokenExpiryBuffer
	if ttl <= 0 {
		ttl = time.Minute
	}

	c.local.Set(key, token, ttl)
	if c.redis != nil {
		_ = c.redis.Set(ctx, redisKey(key), token, ttl).Err()
	}

	return token, nil
}

func redisKey(key string) string {
	return fmt.Sprintf("connector:token:%s", key)
}
