package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func TestSchedulingError_Reasons(t *testing.T) {
	assert.Equal(t, "Appointment date/time must be in the future.", NewPastRejection().Reason)
	assert.Equal(t, "Business is closed on the selected day.", NewClosedDayRejection().Reason)

	outside := NewOutsideHoursRejection(types.TimeString("09:00"), types.TimeString("17:00"))
	assert.Equal(t, "Appointment must be between 09:00 and 17:00.", outside.Reason)

	holiday := NewHolidayRejection("Labour Day")
	assert.Equal(t, "Cannot create an appointment on a public holiday: Labour Day.", holiday.Reason)

	// Без имени праздника формулировка общая
	anonymous := NewHolidayRejection("")
	assert.Equal(t, "Cannot create an appointment on a public holiday.", anonymous.Reason)
}

func TestSchedulingError_Kinds(t *testing.T) {
	assert.Equal(t, RejectionPast, NewPastRejection().Kind)
	assert.Equal(t, RejectionClosedDay, NewClosedDayRejection().Kind)
	assert.Equal(t, RejectionOutsideHours, NewOutsideHoursRejection("09:00", "17:00").Kind)
	assert.Equal(t, RejectionHoliday, NewHolidayRejection("Labour Day").Kind)
}

func TestSchedulingError_ErrorsAs(t *testing.T) {
	var err error = NewClosedDayRejection()
	wrapped := fmt.Errorf("execute: %w", err)

	var rejection *SchedulingError
	require.True(t, errors.As(wrapped, &rejection))
	assert.Equal(t, RejectionClosedDay, rejection.Kind)
	assert.Equal(t, "Business is closed on the selected day.", rejection.Error())
}
