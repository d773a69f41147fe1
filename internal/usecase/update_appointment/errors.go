package update_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена или принадлежит другому тенанту
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrBusinessNotConfigured возвращается, когда профиль бизнеса тенанта отсутствует
	ErrBusinessNotConfigured = errors.New("update_appointment: business not found")

	// ErrSlotTaken возвращается, когда новое время пересекается с другой записью
	ErrSlotTaken = errors.New("update_appointment: the selected time overlaps with another appointment")

	// ErrOrderNumberRequired возвращается при пустом номере заказа
	ErrOrderNumberRequired = errors.New("update_appointment: order number is required")

	// ErrDuplicateOrderNumber возвращается, когда новый номер заказа уже используется
	ErrDuplicateOrderNumber = errors.New("update_appointment: order number already exists")

	// ErrInvalidServiceSelection возвращается, когда хотя бы одна из выбранных услуг
	// не существует или принадлежит другому тенанту
	ErrInvalidServiceSelection = errors.New("update_appointment: one or more selected services are invalid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
