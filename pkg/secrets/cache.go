package secrets

import (
	"context"
	"sync"
	"time"
)

// Credentials is the shape of a database secret as stored in the secrets
// manager: a JSON map with "username" and "password" keys.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type cachedSecret struct {
	value     map[string]string
	expiresAt time.Time
}

// CachingProvider wraps another Provider and memoizes GetSecret results
// for a bounded TTL, so credential lookups during reconnects don't hit
// the secrets manager on every call.
type CachingProvider struct {
	mu      sync.RWMutex
	inner   Provider
	ttl     time.Duration
	secrets map[string]cachedSecret
}

// NewCachingProvider wraps inner with a TTL cache.
func NewCachingProvider(inner Provider, ttl time.Duration) *CachingProvider {
	return &CachingProvider{
		inner:   inner,
		ttl:     ttl,
		secrets: make(map[string]cachedSecret),
	}
}

// GetSecret returns the cached value while fresh, delegating to the inner
// provider otherwise. Fetch failures are never cached.
func (p *CachingProvider) GetSecret(ctx context.Context, key string) (map[string]string, error) {
	p.mu.RLock()
	entry, ok := p.secrets[key]
	p.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.value, nil
	}

	value, err := p.inner.GetSecret(ctx, key)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.secrets[key] = cachedSecret{value: value, expiresAt: time.Now().Add(p.ttl)}
	p.mu.Unlock()
	return value, nil
}

// Invalidate drops one cached secret so the next GetSecret refetches it
// (e.g. after rotation).
func (p *CachingProvider) Invalidate(key string) {
	p.mu.Lock()
	delete(p.secrets, key)
	p.mu.Unlock()
}
