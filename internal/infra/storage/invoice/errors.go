package invoice

import "errors"

var (
	ErrInvoiceNotFound = errors.New("invoice.repository: invoice not found")

	ErrBuildQuery      = errors.New("invoice.repository: failed to build query")
	ErrExecQuery       = errors.New("invoice.repository: failed to execute query")
	ErrScanRow         = errors.New("invoice.repository: failed to scan row")
	ErrUniqueViolation = errors.New("invoice.repository: unique constraint violation")
)
