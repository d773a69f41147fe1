package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 9, 7, 9, 5, 33, 0, time.UTC))
	assert.Equal(t, "09:05", ts.String())
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("17:30")
	require.NoError(t, err)
	assert.Equal(t, "17:30", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("0900")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Comparison(t *testing.T) {
	start := TimeString("09:00")
	end := TimeString("17:00")

	assert.True(t, start.IsBefore(end))
	assert.False(t, end.IsBefore(start))
	assert.True(t, end.IsAfter(start))
	assert.False(t, start.IsBefore(start))
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("09:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 570, m)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, "10:15", ts.String())

	// Переход через полночь заворачивается
	ts, err = TimeString("23:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "00:15", ts.String())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("09:00"))
	assert.Equal(t, "09:00", ts.String())

	// Postgres TIME приходит с секундами
	require.NoError(t, ts.Scan("17:30:00"))
	assert.Equal(t, "17:30", ts.String())

	require.NoError(t, ts.Scan([]byte("12:15")))
	assert.Equal(t, "12:15", ts.String())

	assert.Error(t, ts.Scan(42))
}
