package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// InvoiceLineResponse строка счёта в ответе
type InvoiceLineResponse struct {
	Name      string  `json:"name"`
	Category  *string `json:"category,omitempty"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// InvoiceResponse модель счёта в ответе
type InvoiceResponse struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	CustomerID    uuid.UUID `json:"customer_id"`

	InvoiceNumber string    `json:"invoice_number"`
	Status        string    `json:"status"`
	IssuedAt      time.Time `json:"issued_at"`

	CustomerName    string  `json:"customer_name"`
	CustomerEmail   *string `json:"customer_email,omitempty"`
	BusinessName    string  `json:"business_name"`
	BusinessAddress *string `json:"business_address,omitempty"`
	BusinessLogoURL *string `json:"business_logo_url,omitempty"`

	OrderNumber     *string   `json:"order_number,omitempty"`
	AppointmentDate time.Time `json:"appointment_date"`

	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`

	Lines []InvoiceLineResponse `json:"lines"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvoiceListResponse список счетов
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// FromDomainInvoice конвертирует доменную модель в ответ
func FromDomainInvoice(inv *domain.Invoice) *InvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(inv.Lines))
	for _, line := range inv.Lines {
		lines = append(lines, InvoiceLineResponse{
			Name:      line.Name,
			Category:  line.Category,
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}

	return &InvoiceResponse{
		ID:            inv.ID,
		AppointmentID: inv.AppointmentID,
		CustomerID:    inv.CustomerID,

		InvoiceNumber: inv.InvoiceNumber,
		Status:        string(inv.Status),
		IssuedAt:      inv.IssuedAt,

		CustomerName:    inv.CustomerNameSnapshot,
		CustomerEmail:   inv.CustomerEmailSnapshot,
		BusinessName:    inv.BusinessNameSnapshot,
		BusinessAddress: inv.BusinessAddressSnapshot,
		BusinessLogoURL: inv.BusinessLogoSnapshot,

		OrderNumber:     inv.OrderNumberSnapshot,
		AppointmentDate: inv.AppointmentDateSnapshot,

		Subtotal: inv.Subtotal,
		Discount: inv.Discount,
		Tax:      inv.Tax,
		Total:    inv.Total,

		Lines: lines,

		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

// FromDomainInvoiceList конвертирует список доменных моделей в ответ
func FromDomainInvoiceList(invoices []*domain.Invoice) *InvoiceListResponse {
	result := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		result = append(result, *FromDomainInvoice(inv))
	}
	return &InvoiceListResponse{Invoices: result}
}
