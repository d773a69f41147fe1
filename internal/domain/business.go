package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Business represents a tenant's settings: identity, calendar rules and
// feature flags. Read-only for the booking and invoicing core; mutated
// only through tenant settings, which live outside this service's scope.
type Business struct {
	ID      uuid.UUID
	Name    string
	Email   *string
	Phone   *string
	Address *string
	LogoURL *string

	// Код страны для календаря государственных праздников (ISO 3166-1 alpha-2)
	CountryCode string

	// Календарные правила
	DefaultSlotMinutes int
	WorkDayStart       types.TimeString
	WorkDayEnd         types.TimeString
	OpenMon            bool
	OpenTue            bool
	OpenWed            bool
	OpenThu            bool
	OpenFri            bool
	OpenSat            bool
	OpenSun            bool

	EnableInvoices bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpenOn returns true if the business accepts appointments on the given weekday.
func (b *Business) IsOpenOn(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return b.OpenMon
	case time.Tuesday:
		return b.OpenTue
	case time.Wednesday:
		return b.OpenWed
	case time.Thursday:
		return b.OpenThu
	case time.Friday:
		return b.OpenFri
	case time.Saturday:
		return b.OpenSat
	case time.Sunday:
		return b.OpenSun
	default:
		return false
	}
}

// SlotDurationMinutes returns the tenant's slot duration,
// coercing non-positive values to the default.
func (b *Business) SlotDurationMinutes() int {
	return NormalizeDuration(b.DefaultSlotMinutes)
}

// HolidayCountryCode returns the tenant's country code with the
// system-wide fallback applied.
func (b *Business) HolidayCountryCode() string {
	if b.CountryCode == "" {
		return DefaultCountryCode
	}
	return b.CountryCode
}
