package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Valid returns true if the status is one of the known values.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ServiceLine is an immutable snapshot of a booked service, taken at the
// moment the appointment is created or updated. Later price or name edits
// in the catalog must not change it.
type ServiceLine struct {
	ServiceID      uuid.UUID
	Name           string
	Category       *string
	PriceAtBooking float64
}

// Appointment represents a booked time slot for a tenant's customer
type Appointment struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	CustomerID  uuid.UUID
	OrderNumber string
	StartTime   time.Time
	Description string
	Status      AppointmentStatus

	// Снапшот выбранных услуг на момент бронирования
	Services []ServiceLine

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its slot.
// Only cancelled appointments release the slot.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// AppointmentsFilter фильтр для выборки записей тенанта
type AppointmentsFilter struct {
	TenantID   uuid.UUID          // Обязательный параметр
	CustomerID *uuid.UUID         // Фильтр по клиенту (опционально)
	StartDate  *time.Time         // Начало периода (опционально)
	EndDate    *time.Time         // Конец периода (опционально)
	Status     *AppointmentStatus // Фильтр по статусу (опционально)
}
