package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus represents the lifecycle stage of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "draft"
	InvoiceStatusSent   InvoiceStatus = "sent"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusVoided InvoiceStatus = "voided"
)

// InvoiceLine is an immutable line item copied from the appointment's
// booked-service snapshot at issuance time.
type InvoiceLine struct {
	ID        uuid.UUID
	InvoiceID uuid.UUID
	Name      string
	Category  *string
	Qty       int
	UnitPrice float64
	LineTotal float64
}

// Invoice represents an issued invoice. At most one invoice exists per
// (tenant, appointment); the number is unique per (tenant, number).
// Everything except Status is immutable after issuance.
type Invoice struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	AppointmentID uuid.UUID
	CustomerID    uuid.UUID

	InvoiceNumber string
	IssuedAt      time.Time
	Status        InvoiceStatus

	// Снапшоты на момент выставления - не зависят от последующих правок источников
	CustomerNameSnapshot    string
	CustomerEmailSnapshot   *string
	BusinessNameSnapshot    string
	BusinessAddressSnapshot *string
	BusinessLogoSnapshot    *string
	OrderNumberSnapshot     *string
	AppointmentDateSnapshot time.Time

	Subtotal float64
	Discount float64
	Tax      float64
	Total    float64

	Lines []InvoiceLine

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InvoiceNumberPrefix возвращает префикс номеров счетов за год: "INV-{year}-"
func InvoiceNumberPrefix(year int) string {
	return fmt.Sprintf("INV-%d-", year)
}

// FormatInvoiceNumber formats a tenant-and-year scoped invoice number:
// "INV-{year}-{seq:04d}".
func FormatInvoiceNumber(year, seq int) string {
	return fmt.Sprintf("INV-%d-%04d", year, seq)
}

// ParseInvoiceSequence extracts the numeric sequence from an invoice
// number for the given year. A number with a foreign prefix or a
// non-numeric suffix yields 0, never an error.
func ParseInvoiceSequence(number string, year int) int {
	prefix := InvoiceNumberPrefix(year)
	if !strings.HasPrefix(number, prefix) {
		return 0
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(number, prefix))
	if err != nil || seq < 0 {
		return 0
	}
	return seq
}
