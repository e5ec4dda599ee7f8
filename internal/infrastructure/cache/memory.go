// Package cache implementa ports.Cache en memoria y sobre Redis.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/brickapp/brickapp-api/internal/application/ports"
)

type entrada struct {
	valor  string
	expira time.Time
}

// MemoryCache caché local del proceso. Las entradas vencidas se ignoran en Get
// y se eliminan con Purge (lo invoca el scheduler).
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entrada
	now     func() time.Time
}

var _ ports.Cache = (*MemoryCache)(nil)

// NewMemoryCache crea una caché vacía.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]entrada), now: time.Now}
}

// Get devuelve el valor si existe y no expiró.
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.expira) {
		return "", false, nil
	}
	return e.valor, true, nil
}

// Set guarda el valor durante ttl. ttl <= 0 no guarda nada.
func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	c.entries[key] = entrada{valor: value, expira: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Purge elimina las entradas vencidas y devuelve cuántas borró.
func (c *MemoryCache) Purge() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if !now.Before(e.expira) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len cantidad de entradas (vencidas incluidas).
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
