package create_invoice

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на выставление счёта по записи
type Request struct {
	TenantID      uuid.UUID
	AppointmentID uuid.UUID
}

// LineResponse строка счёта в ответе
type LineResponse struct {
	Name      string
	Category  *string
	Qty       int
	UnitPrice float64
	LineTotal float64
}

// Response модель ответа со счётом
// Операция идемпотентна: повторный запрос возвращает уже выставленный счёт
type Response struct {
	ID            uuid.UUID
	AppointmentID uuid.UUID
	CustomerID    uuid.UUID

	InvoiceNumber string
	Status        string
	IssuedAt      time.Time

	CustomerName    string
	CustomerEmail   *string
	BusinessName    string
	BusinessAddress *string
	BusinessLogoURL *string

	OrderNumber     *string
	AppointmentDate time.Time

	Subtotal float64
	Discount float64
	Tax      float64
	Total    float64

	Lines []LineResponse

	CreatedAt time.Time
	UpdatedAt time.Time
}
