package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена или принадлежит
	// другому тенанту - эти случаи намеренно неразличимы
	ErrAppointmentNotFound = errors.New("appointments.service: appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments.service: internal error")
)
