package nager

import (
	"context"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Cache хранилище списков праздников с TTL
// Праздники меняются редко, кэш на 12 часов считается достаточно свежим
type Cache interface {
	GetHolidays(ctx context.Context, key string) ([]Holiday, bool, error)
	SetHolidays(ctx context.Context, key string, holidays []Holiday, ttl time.Duration) error
}
