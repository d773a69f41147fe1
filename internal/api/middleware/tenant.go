// Package middleware содержит HTTP-middleware: извлечение тенанта и метрики.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

type contextKey string

const tenantIDKey contextKey = "tenant_id"

// TenantHeader заголовок с идентификатором тенанта
// Аутентификация выполняется выше по стеку; сервис доверяет заголовку
const TenantHeader = "X-Tenant-ID"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Tenant извлекает ID тенанта из заголовка и кладет его в контекст запроса
// Запрос без валидного UUID тенанта отклоняется до бизнес-логики
func Tenant(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(TenantHeader)
			if raw == "" {
				log.Warn("%s %s - missing %s header", r.Method, r.URL.Path, TenantHeader)
				handlers.RespondBadRequest(w, "tenant id header is required")
				return
			}

			tenantID, err := uuid.Parse(raw)
			if err != nil {
				log.Warn("%s %s - invalid %s header: %v", r.Method, r.URL.Path, TenantHeader, err)
				handlers.RespondBadRequest(w, "tenant id must be a valid UUID")
				return
			}

			ctx := context.WithValue(r.Context(), tenantIDKey, tenantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantFromContext возвращает ID тенанта, положенный middleware'ом Tenant
func TenantFromContext(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(uuid.UUID)
	return tenantID, ok
}
