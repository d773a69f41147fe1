package create_invoice

import (
	"time"

	"github.com/google/uuid"

	createInvoice "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_invoice"
)

// InvoiceLineModel строка счёта в HTTP-ответе
type InvoiceLineModel struct {
	Name      string  `json:"name"`
	Category  *string `json:"category,omitempty"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

// InvoiceResponse HTTP response model
type InvoiceResponse struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointmentId"`
	CustomerID    uuid.UUID `json:"customerId"`

	InvoiceNumber string    `json:"invoiceNumber"`
	Status        string    `json:"status"`
	IssuedAt      time.Time `json:"issuedAt"`

	CustomerName    string  `json:"customerName"`
	CustomerEmail   *string `json:"customerEmail,omitempty"`
	BusinessName    string  `json:"businessName"`
	BusinessAddress *string `json:"businessAddress,omitempty"`
	BusinessLogoURL *string `json:"businessLogoUrl,omitempty"`

	OrderNumber     *string   `json:"orderNumber,omitempty"`
	AppointmentDate time.Time `json:"appointmentDate"`

	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`

	Lines []InvoiceLineModel `json:"lines"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP-модель
func FromUseCaseResponse(result *createInvoice.Response) *InvoiceResponse {
	lines := make([]InvoiceLineModel, 0, len(result.Lines))
	for _, line := range result.Lines {
		lines = append(lines, InvoiceLineModel{
			Name:      line.Name,
			Category:  line.Category,
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}

	return &InvoiceResponse{
		ID:            result.ID,
		AppointmentID: result.AppointmentID,
		CustomerID:    result.CustomerID,

		InvoiceNumber: result.InvoiceNumber,
		Status:        result.Status,
		IssuedAt:      result.IssuedAt,

		CustomerName:    result.CustomerName,
		CustomerEmail:   result.CustomerEmail,
		BusinessName:    result.BusinessName,
		BusinessAddress: result.BusinessAddress,
		BusinessLogoURL: result.BusinessLogoURL,

		OrderNumber:     result.OrderNumber,
		AppointmentDate: result.AppointmentDate,

		Subtotal: result.Subtotal,
		Discount: result.Discount,
		Tax:      result.Tax,
		Total:    result.Total,

		Lines: lines,

		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}
}
