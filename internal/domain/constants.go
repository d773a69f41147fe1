package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
	DefaultCountryCode         = "MK"
)

// Business validation constants
const (
	MaxOrderNumberLength   = 50
	MaxDescriptionLength   = 1000
	MaxInvoiceNumberLength = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не участвующих в проверке пересечений
// Отменённая запись освобождает свой слот
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}

// ActiveStatuses список статусов, занимающих слот в календаре
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusCompleted,
	StatusNoShow,
}
