package create_invoice

import "errors"

var (
	// ErrBusinessNotConfigured возвращается, когда профиль бизнеса тенанта отсутствует
	ErrBusinessNotConfigured = errors.New("create_invoice: business not found")

	// ErrInvoicingDisabled возвращается, когда выставление счетов выключено в настройках тенанта
	ErrInvoicingDisabled = errors.New("create_invoice: invoices are disabled in settings")

	// ErrAppointmentNotFound возвращается, когда запись не найдена или принадлежит другому тенанту
	ErrAppointmentNotFound = errors.New("create_invoice: appointment not found")

	// ErrSequenceConflict возвращается после исчерпания попыток занять номер счёта
	// Конкурентное выставление для одного тенанта/года - ожидаемый сценарий,
	// исчерпание ретраев - терминальная ошибка, видимая вызывающему коду
	ErrSequenceConflict = errors.New("create_invoice: could not allocate invoice number, retry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_invoice: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_invoice: internal error")
)
