package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ServiceLineResponse строка услуги в ответе
type ServiceLineResponse struct {
	ServiceID      uuid.UUID `json:"service_id"`
	Name           string    `json:"name"`
	Category       *string   `json:"category,omitempty"`
	PriceAtBooking float64   `json:"price_at_booking"`
}

// AppointmentResponse модель записи в ответе
type AppointmentResponse struct {
	ID          uuid.UUID             `json:"id"`
	CustomerID  uuid.UUID             `json:"customer_id"`
	OrderNumber string                `json:"order_number,omitempty"`
	StartTime   time.Time             `json:"start_time"`
	Description string                `json:"description,omitempty"`
	Status      string                `json:"status"`
	Services    []ServiceLineResponse `json:"services"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// GetByDateRangeRequest запрос записей за период
type GetByDateRangeRequest struct {
	TenantID  uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// FromDomainAppointment конвертирует доменную модель в ответ
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	services := make([]ServiceLineResponse, 0, len(appt.Services))
	for _, line := range appt.Services {
		services = append(services, ServiceLineResponse{
			ServiceID:      line.ServiceID,
			Name:           line.Name,
			Category:       line.Category,
			PriceAtBooking: line.PriceAtBooking,
		})
	}

	return &AppointmentResponse{
		ID:          appt.ID,
		CustomerID:  appt.CustomerID,
		OrderNumber: appt.OrderNumber,
		StartTime:   appt.StartTime,
		Description: appt.Description,
		Status:      string(appt.Status),
		Services:    services,
		CreatedAt:   appt.CreatedAt,
		UpdatedAt:   appt.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список доменных моделей в ответ
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	result := make([]AppointmentResponse, 0, len(appts))
	for _, appt := range appts {
		result = append(result, *FromDomainAppointment(appt))
	}
	return &AppointmentListResponse{Appointments: result}
}

// ToDomainStatus конвертирует строку статуса в доменный тип
func ToDomainStatus(status string) (domain.AppointmentStatus, bool) {
	s := domain.AppointmentStatus(status)
	return s, s.Valid()
}
