package nager

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

type fakeCache struct {
	entries map[string][]Holiday
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]Holiday)}
}

func (c *fakeCache) GetHolidays(_ context.Context, key string) ([]Holiday, bool, error) {
	holidays, ok := c.entries[key]
	return holidays, ok, nil
}

func (c *fakeCache) SetHolidays(_ context.Context, key string, holidays []Holiday, _ time.Duration) error {
	c.entries[key] = holidays
	c.sets++
	return nil
}

func TestClient_GetHolidays(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/api/v3/PublicHolidays/2026/MK", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"date":"2026-05-01","localName":"Ден на трудот","name":"Labour Day","countryCode":"MK","global":true},
			{"date":"2026-01-01","localName":"Нова Година","name":"New Year's Day","countryCode":"MK","global":true}
		]`))
	}))
	defer srv.Close()

	cache := newFakeCache()
	client := NewClient(srv.URL, 5*time.Second, cache, time.Hour, testLogger{})

	holidays, err := client.GetHolidays(context.Background(), 2026, "MK")
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, "Labour Day", holidays[0].Name)
	assert.Equal(t, 1, cache.sets)

	// Повторный запрос отвечает из кэша
	_, err = client.GetHolidays(context.Background(), 2026, "MK")
	require.NoError(t, err)
	assert.Equal(t, 1, requests)
}

func TestClient_GetHolidays_NormalizesCountryCode(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, newFakeCache(), time.Hour, testLogger{})

	// Пустой код страны заменяется на MK, регистр приводится к верхнему
	_, err := client.GetHolidays(context.Background(), 2026, "")
	require.NoError(t, err)
	assert.Equal(t, "/api/v3/PublicHolidays/2026/MK", gotPath)

	_, err = client.GetHolidays(context.Background(), 2026, "de")
	require.NoError(t, err)
	assert.Equal(t, "/api/v3/PublicHolidays/2026/DE", gotPath)
}

func TestClient_GetHolidays_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, newFakeCache(), time.Hour, testLogger{})

	_, err := client.GetHolidays(context.Background(), 2026, "XX")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_GetHolidayDates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"date":"2026-05-01","localName":"Ден на трудот","name":"Labour Day"},
			{"date":"2026-05-01","localName":"Duplicate","name":"Duplicate"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, newFakeCache(), time.Hour, testLogger{})

	dates, err := client.GetHolidayDates(context.Background(), 2026, "MK")
	require.NoError(t, err)
	require.Len(t, dates, 1)

	// Первый праздник на дату выигрывает
	assert.Equal(t, "Ден на трудот", dates["2026-05-01"].DisplayName())
}

func TestNormalizeCountryCode(t *testing.T) {
	assert.Equal(t, "MK", NormalizeCountryCode(""))
	assert.Equal(t, "MK", NormalizeCountryCode("  "))
	assert.Equal(t, "DE", NormalizeCountryCode("de"))
	assert.Equal(t, "US", NormalizeCountryCode("US"))
}

func TestHoliday_DisplayName(t *testing.T) {
	assert.Equal(t, "Ден на трудот", Holiday{LocalName: "Ден на трудот", Name: "Labour Day"}.DisplayName())
	assert.Equal(t, "Labour Day", Holiday{Name: "Labour Day"}.DisplayName())
	assert.Equal(t, "", Holiday{}.DisplayName())
}
