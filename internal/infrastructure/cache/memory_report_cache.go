package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/charity-reports-api/internal/application/reporting"
)

var _ reporting.ReportCache = (*MemoryReportCache)(nil)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryReportCache caché local por proceso, usada cuando no hay Redis configurado.
// Las entradas vencidas se descartan al leerlas y al superar maxEntries.
type MemoryReportCache struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	maxEntries int
	now        func() time.Time
}

// NewMemoryReportCache construye la caché. maxEntries <= 0 usa 256.
func NewMemoryReportCache(maxEntries int) *MemoryReportCache {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	return &MemoryReportCache{entries: make(map[string]memoryEntry), maxEntries: maxEntries, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (c *MemoryReportCache) WithClock(now func() time.Time) *MemoryReportCache {
	c.now = now
	return c
}

// Get implementa reporting.ReportCache.
func (c *MemoryReportCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set implementa reporting.ReportCache.
func (c *MemoryReportCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evict(now)
	}
	c.entries[key] = memoryEntry{value: append([]byte(nil), value...), expiresAt: now.Add(ttl)}
	return nil
}

// evict borra las vencidas; si no alcanza, la que vence primero.
func (c *MemoryReportCache) evict(now time.Time) {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			continue
		}
		if oldestKey == "" || e.expiresAt.Before(oldest) {
			oldestKey, oldest = k, e.expiresAt
		}
	}
	if len(c.entries) >= c.maxEntries && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Len número de entradas (incluye vencidas aún no descartadas).
func (c *MemoryReportCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
