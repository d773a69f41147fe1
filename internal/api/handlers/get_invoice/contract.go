package get_invoice

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/service/invoices/models"
)

type InvoicesService interface {
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (*models.InvoiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
