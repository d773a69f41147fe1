package create_invoice

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	createInvoice "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_invoice"
)

const (
	msgTenantRequired       = "tenant id is required"
	msgInvalidAppointmentID = "appointment id must be a valid UUID"
	msgAppointmentNotFound  = "Appointment not found."
	msgBusinessNotFound     = "Business not found."
	msgInvoicingDisabled    = "Invoices are disabled in settings."
	msgSequenceConflict     = "Could not create invoice. Please retry."
)

type Handler struct {
	useCase CreateInvoiceUseCase
	logger  Logger
}

func NewHandler(useCase CreateInvoiceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{id}/invoice
// Идемпотентный запрос: повторный вызов возвращает уже выставленный счёт
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		handlers.RespondBadRequest(w, msgTenantRequired)
		return
	}

	appointmentID, err := uuid.Parse(mux.Vars(r)["appointmentId"])
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/invoice - Invalid appointment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createInvoice.Request{
		TenantID:      tenantID,
		AppointmentID: appointmentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, createInvoice.ErrSequenceConflict):
			h.logger.Warn("POST /appointments/{id}/invoice - Sequence conflict: appointment=%s, tenant=%s", appointmentID, tenantID)
			handlers.RespondConflict(w, msgSequenceConflict)

		case errors.Is(err, createInvoice.ErrInvoicingDisabled):
			h.logger.Warn("POST /appointments/{id}/invoice - Invoicing disabled: tenant=%s", tenantID)
			handlers.RespondConflict(w, msgInvoicingDisabled)

		case errors.Is(err, createInvoice.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/invoice - Appointment not found: id=%s, tenant=%s", appointmentID, tenantID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, createInvoice.ErrBusinessNotConfigured):
			h.logger.Warn("POST /appointments/{id}/invoice - Business not found: tenant=%s", tenantID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createInvoice.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/invoice - Invalid input: error=%v", err)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		default:
			h.logger.Error("POST /appointments/{id}/invoice - Failed to create invoice: appointment=%s, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/invoice - Invoice %s for appointment=%s, tenant=%s",
		result.InvoiceNumber, appointmentID, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
