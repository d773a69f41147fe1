package update_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на обновление записи
// Нулевое StartTime означает "не переносить"; пустое Description сохраняет текущее
type Request struct {
	TenantID      uuid.UUID
	AppointmentID uuid.UUID

	OrderNumber        string
	StartTime          time.Time
	Description        string
	Status             domain.AppointmentStatus
	ServiceOfferingIDs []uuid.UUID
}

// Response модель ответа с обновленной записью
type Response struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	OrderNumber string
	StartTime   time.Time
	Description string
	Status      string

	Services []domain.ServiceLine

	CreatedAt time.Time
	UpdatedAt time.Time
}
