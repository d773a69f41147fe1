package domain

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// RejectionKind вид отказа в планировании слота
type RejectionKind string

const (
	RejectionPast         RejectionKind = "past"
	RejectionClosedDay    RejectionKind = "closed_day"
	RejectionOutsideHours RejectionKind = "outside_hours"
	RejectionHoliday      RejectionKind = "holiday"
)

// SchedulingError отказ в планировании с читаемой причиной
// Reason отдается клиенту дословно, чтобы форма могла показать его без изменений
type SchedulingError struct {
	Kind   RejectionKind
	Reason string
}

func (e *SchedulingError) Error() string {
	return e.Reason
}

// NewPastRejection слот в прошлом или прямо сейчас
func NewPastRejection() *SchedulingError {
	return &SchedulingError{
		Kind:   RejectionPast,
		Reason: "Appointment date/time must be in the future.",
	}
}

// NewClosedDayRejection день недели закрыт у бизнеса
func NewClosedDayRejection() *SchedulingError {
	return &SchedulingError{
		Kind:   RejectionClosedDay,
		Reason: "Business is closed on the selected day.",
	}
}

// NewOutsideHoursRejection время вне рабочего окна [start, end)
func NewOutsideHoursRejection(start, end types.TimeString) *SchedulingError {
	return &SchedulingError{
		Kind:   RejectionOutsideHours,
		Reason: fmt.Sprintf("Appointment must be between %s and %s.", start, end),
	}
}

// NewHolidayRejection дата является публичным праздником
// Пустое имя праздника дает общую формулировку
func NewHolidayRejection(holidayName string) *SchedulingError {
	if holidayName == "" {
		return &SchedulingError{
			Kind:   RejectionHoliday,
			Reason: "Cannot create an appointment on a public holiday.",
		}
	}
	return &SchedulingError{
		Kind:   RejectionHoliday,
		Reason: fmt.Sprintf("Cannot create an appointment on a public holiday: %s.", holidayName),
	}
}
