package cache

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/integrations/nager"
)

type memoryEntry struct {
	holidays  []nager.Holiday
	expiresAt time.Time
}

// MemoryHolidayCache кэш праздников в памяти процесса
// Используется при отключенном Redis и в тестах
type MemoryHolidayCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryHolidayCache создает новый in-memory кэш праздников
func NewMemoryHolidayCache() *MemoryHolidayCache {
	return &MemoryHolidayCache{
		entries: make(map[string]memoryEntry),
	}
}

// GetHolidays возвращает закэшированный список, если TTL не истёк
func (c *MemoryHolidayCache) GetHolidays(_ context.Context, key string) ([]nager.Holiday, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}

	return entry.holidays, true, nil
}

// SetHolidays сохраняет список с указанным TTL
func (c *MemoryHolidayCache) SetHolidays(_ context.Context, key string, holidays []nager.Holiday, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{
		holidays:  holidays,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}
