package main

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// TokenStore holds approval tokens with optional expiry. The real service
// persists tokens to disk; the stub keeps them in memory for the lifetime of
// the process, which is what manual end-to-end testing needs.
type TokenStore struct {
	cache *ttlcache.Cache[string, time.Time]
}

// NewTokenStore creates a store. ttl <= 0 means tokens never expire.
func NewTokenStore(ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	c := ttlcache.New[string, time.Time](
		ttlcache.WithTTL[string, time.Time](ttl),
		ttlcache.WithDisableTouchOnHit[string, time.Time](),
	)
	go c.Start()
	return &TokenStore{cache: c}
}

// Close stops the expiration loop.
func (ts *TokenStore) Close() {
	ts.cache.Stop()
}

// Store records a token.
func (ts *TokenStore) Store(token string) {
	ts.cache.Set(token, time.Now(), ttlcache.DefaultTTL)
}

// Valid reports whether the token is stored and unexpired.
func (ts *TokenStore) Valid(token string) bool {
	return ts.cache.Get(token) != nil
}

// Count returns the number of live tokens.
func (ts *TokenStore) Count() int {
	return ts.cache.Len()
}
