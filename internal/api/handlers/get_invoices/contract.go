package get_invoices

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/service/invoices/models"
)

type InvoicesService interface {
	GetAllByTenant(ctx context.Context, tenantID uuid.UUID) (*models.InvoiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
