package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/integrations/nager"
)

var (
	ErrCacheUnavailable = errors.New("holiday.cache: redis unavailable")
	ErrCacheEncode      = errors.New("holiday.cache: failed to encode value")
	ErrCacheDecode      = errors.New("holiday.cache: failed to decode value")
)

// RedisHolidayCache кэш праздников поверх Redis
// Значения хранятся как JSON с TTL на ключе
type RedisHolidayCache struct {
	client *redis.Client
}

// NewRedisHolidayCache создает кэш праздников поверх готового Redis-клиента
func NewRedisHolidayCache(client *redis.Client) *RedisHolidayCache {
	return &RedisHolidayCache{client: client}
}

// GetHolidays возвращает закэшированный список; отсутствие ключа — не ошибка
func (c *RedisHolidayCache) GetHolidays(ctx context.Context, key string) ([]nager.Holiday, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: GET %s: %v", ErrCacheUnavailable, key, err)
	}

	var holidays []nager.Holiday
	if err := json.Unmarshal(payload, &holidays); err != nil {
		return nil, false, fmt.Errorf("%w: key %s: %v", ErrCacheDecode, key, err)
	}

	return holidays, true, nil
}

// SetHolidays сохраняет список как JSON с указанным TTL
func (c *RedisHolidayCache) SetHolidays(ctx context.Context, key string, holidays []nager.Holiday, ttl time.Duration) error {
	payload, err := json.Marshal(holidays)
	if err != nil {
		return fmt.Errorf("%w: key %s: %v", ErrCacheEncode, key, err)
	}

	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: SET %s: %v", ErrCacheUnavailable, key, err)
	}

	return nil
}
