package create_invoice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createInvoice "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_invoice"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	resp *createInvoice.Response
	err  error

	gotReq *createInvoice.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createInvoice.Request) (*createInvoice.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

func doRequest(t *testing.T, uc *fakeUseCase, appointmentID string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(uc, nopLogger{})

	r := mux.NewRouter()
	r.Use(middleware.Tenant(nopLogger{}))
	r.HandleFunc("/api/v1/appointments/{appointmentId}/invoice", handler.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/"+appointmentID+"/invoice", nil)
	req.Header.Set(middleware.TenantHeader, uuid.NewString())
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	apptID := uuid.New()
	uc := &fakeUseCase{
		resp: &createInvoice.Response{
			ID:            uuid.New(),
			AppointmentID: apptID,
			InvoiceNumber: "INV-2026-0042",
			Status:        string(domain.InvoiceStatusDraft),
			IssuedAt:      time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
			Total:         75.5,
		},
	}

	rec := doRequest(t, uc, apptID.String())

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "INV-2026-0042")

	require.NotNil(t, uc.gotReq)
	assert.Equal(t, apptID, uc.gotReq.AppointmentID)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"sequence conflict", createInvoice.ErrSequenceConflict, http.StatusConflict, "Could not create invoice. Please retry."},
		{"invoicing disabled", createInvoice.ErrInvoicingDisabled, http.StatusConflict, "Invoices are disabled in settings."},
		{"appointment not found", createInvoice.ErrAppointmentNotFound, http.StatusNotFound, "Appointment not found."},
		{"business not found", createInvoice.ErrBusinessNotConfigured, http.StatusNotFound, "Business not found."},
		{"internal", createInvoice.ErrInternal, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tt.err}, uuid.NewString())

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandle_MalformedAppointmentID(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, "not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "appointment id must be a valid UUID")
}
