package get_appointments

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetAllByTenant(ctx context.Context, tenantID uuid.UUID) (*models.AppointmentListResponse, error)
	GetByCustomer(ctx context.Context, customerID, tenantID uuid.UUID) (*models.AppointmentListResponse, error)
	GetByDateRange(ctx context.Context, req *models.GetByDateRangeRequest) (*models.AppointmentListResponse, error)
	GetByStatus(ctx context.Context, status string, tenantID uuid.UUID) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
