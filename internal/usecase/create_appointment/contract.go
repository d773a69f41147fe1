package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/nager"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	IsTimeSlotAvailable(ctx context.Context, start time.Time, durationMinutes int, tenantID uuid.UUID, excludeID *uuid.UUID) (bool, error)
	OrderNumberExists(ctx context.Context, orderNumber string, excludeID *uuid.UUID) (bool, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Customer, error)
}

// ServiceCatalogRepository интерфейс каталога услуг
type ServiceCatalogRepository interface {
	GetByIDsForTenant(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]*domain.ServiceOffering, error)
}

// HolidayClient интерфейс источника публичных праздников
type HolidayClient interface {
	GetHolidayDates(ctx context.Context, year int, countryCode string) (map[string]nager.Holiday, error)
}

// MailSender интерфейс отправителя уведомлений
// Отправка best-effort: ошибка логируется и не влияет на результат операции
type MailSender interface {
	SendWithAttachment(to, subject, body string, attachment []byte, filename, mimeType string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
