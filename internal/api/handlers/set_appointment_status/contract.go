package set_appointment_status

import (
	"context"

	"github.com/google/uuid"
)

type AppointmentsService interface {
	SetStatus(ctx context.Context, id, tenantID uuid.UUID, status string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
