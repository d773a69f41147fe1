package invoices

import "errors"

var (
	// ErrInvoiceNotFound возвращается, когда счёт не найден или принадлежит другому тенанту
	ErrInvoiceNotFound = errors.New("invoices.service: invoice not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("invoices.service: internal error")
)
