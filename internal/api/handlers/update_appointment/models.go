package update_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	updateAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
)

// UpdateAppointmentRequest HTTP request model
// Нулевое startTime означает "не переносить", пустое description сохраняет текущее
type UpdateAppointmentRequest struct {
	OrderNumber        string      `json:"orderNumber"`
	StartTime          time.Time   `json:"startTime,omitempty"`
	Description        string      `json:"description,omitempty"`
	Status             string      `json:"status"`
	ServiceOfferingIDs []uuid.UUID `json:"serviceOfferingIds,omitempty"`
}

// ServiceLineModel строка услуги в HTTP-ответе
type ServiceLineModel struct {
	ServiceID      uuid.UUID `json:"serviceId"`
	Name           string    `json:"name"`
	Category       *string   `json:"category,omitempty"`
	PriceAtBooking float64   `json:"priceAtBooking"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID          uuid.UUID          `json:"id"`
	CustomerID  uuid.UUID          `json:"customerId"`
	OrderNumber string             `json:"orderNumber"`
	StartTime   time.Time          `json:"startTime"`
	Description string             `json:"description,omitempty"`
	Status      string             `json:"status"`
	Services    []ServiceLineModel `json:"services"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(tenantID, appointmentID uuid.UUID) *updateAppointment.Request {
	return &updateAppointment.Request{
		TenantID:           tenantID,
		AppointmentID:      appointmentID,
		OrderNumber:        r.OrderNumber,
		StartTime:          r.StartTime,
		Description:        r.Description,
		Status:             domain.AppointmentStatus(r.Status),
		ServiceOfferingIDs: r.ServiceOfferingIDs,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP-модель
func FromUseCaseResponse(result *updateAppointment.Response) *AppointmentResponse {
	services := make([]ServiceLineModel, 0, len(result.Services))
	for _, line := range result.Services {
		services = append(services, ServiceLineModel{
			ServiceID:      line.ServiceID,
			Name:           line.Name,
			Category:       line.Category,
			PriceAtBooking: line.PriceAtBooking,
		})
	}

	return &AppointmentResponse{
		ID:          result.ID,
		CustomerID:  result.CustomerID,
		OrderNumber: result.OrderNumber,
		StartTime:   result.StartTime,
		Description: result.Description,
		Status:      result.Status,
		Services:    services,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}
}
