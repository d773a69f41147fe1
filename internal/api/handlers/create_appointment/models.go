package create_appointment

import (
	"time"

	"github.com/google/uuid"

	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	CustomerID         uuid.UUID   `json:"customerId"`
	OrderNumber        string      `json:"orderNumber,omitempty"`
	StartTime          time.Time   `json:"startTime"` // RFC 3339
	Description        string      `json:"description,omitempty"`
	ServiceOfferingIDs []uuid.UUID `json:"serviceOfferingIds,omitempty"`
	NotifyByEmail      bool        `json:"notifyByEmail,omitempty"`
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
	ID           uuid.UUID          `json:"id"`
	CustomerID   uuid.UUID          `json:"customerId"`
	CustomerName string             `json:"customerName,omitempty"`
	OrderNumber  string             `json:"orderNumber,omitempty"`
	StartTime    time.Time          `json:"startTime"`
	Description  string             `json:"description,omitempty"`
	Status       string             `json:"status"`
	Services     []ServiceLineModel `json:"services"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(tenantID uuid.UUID) *createAppointment.Request {
	return &createAppointment.Request{
		TenantID:           tenantID,
		CustomerID:         r.CustomerID,
		OrderNumber:        r.OrderNumber,
		StartTime:          r.StartTime,
		Description:        r.Description,
		ServiceOfferingIDs: r.ServiceOfferingIDs,
		NotifyByEmail:      r.NotifyByEmail,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP-модель
func FromUseCaseResponse(result *createAppointment.Response) *AppointmentResponse {
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
		ID:           result.ID,
		CustomerID:   result.CustomerID,
		CustomerName: result.CustomerName,
		OrderNumber:  result.OrderNumber,
		StartTime:    result.StartTime,
		Description:  result.Description,
		Status:       result.Status,
		Services:     services,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}
}
