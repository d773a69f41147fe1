package create_appointment

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден или принадлежит другому тенанту
	// Эти случаи намеренно неразличимы для вызывающего кода
	ErrCustomerNotFound = errors.New("create_appointment: customer not found")

	// ErrBusinessNotConfigured возвращается, когда профиль бизнеса тенанта отсутствует
	ErrBusinessNotConfigured = errors.New("create_appointment: business not found")

	// ErrSlotTaken возвращается, когда слот пересекается с другой записью
	ErrSlotTaken = errors.New("create_appointment: the selected time overlaps with another appointment")

	// ErrDuplicateOrderNumber возвращается, когда номер заказа уже используется
	ErrDuplicateOrderNumber = errors.New("create_appointment: order number already exists")

	// ErrInvalidServiceSelection возвращается, когда хотя бы одна из выбранных услуг
	// не существует или принадлежит другому тенанту
	ErrInvalidServiceSelection = errors.New("create_appointment: one or more selected services are invalid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
