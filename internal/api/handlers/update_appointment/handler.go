package update_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	updateAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
)

const (
	msgInvalidRequestBody      = "invalid request body"
	msgTenantRequired          = "tenant id is required"
	msgInvalidAppointmentID    = "appointment id must be a valid UUID"
	msgAppointmentNotFound     = "Appointment not found."
	msgBusinessNotFound        = "Business not found."
	msgSlotTaken               = "The selected time overlaps with another appointment."
	msgOrderNumberRequired     = "Order number is required."
	msgDuplicateOrderNumber    = "Order number already exists. Please use a different order number."
	msgInvalidServiceSelection = "One or more selected services are invalid."
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		handlers.RespondBadRequest(w, msgTenantRequired)
		return
	}

	appointmentID, err := uuid.Parse(mux.Vars(r)["appointmentId"])
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid appointment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID, appointmentID))
	if err != nil {
		var rejection *domain.SchedulingError
		if errors.As(err, &rejection) {
			h.logger.Warn("PUT /appointments/{id} - Scheduling rejected: id=%s, reason=%s", appointmentID, rejection.Reason)
			handlers.RespondUnprocessable(w, rejection.Reason)
			return
		}

		switch {
		case errors.Is(err, updateAppointment.ErrSlotTaken):
			h.logger.Warn("PUT /appointments/{id} - Slot taken: id=%s, tenant=%s", appointmentID, tenantID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, updateAppointment.ErrDuplicateOrderNumber):
			h.logger.Warn("PUT /appointments/{id} - Duplicate order number: id=%s", appointmentID)
			handlers.RespondConflict(w, msgDuplicateOrderNumber)

		case errors.Is(err, updateAppointment.ErrOrderNumberRequired):
			h.logger.Warn("PUT /appointments/{id} - Order number required: id=%s", appointmentID)
			handlers.RespondBadRequest(w, msgOrderNumberRequired)

		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id} - Appointment not found: id=%s, tenant=%s", appointmentID, tenantID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, updateAppointment.ErrBusinessNotConfigured):
			h.logger.Warn("PUT /appointments/{id} - Business not found: tenant=%s", tenantID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, updateAppointment.ErrInvalidServiceSelection):
			h.logger.Warn("PUT /appointments/{id} - Invalid service selection: id=%s", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidServiceSelection)

		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{id} - Invalid input: id=%s, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /appointments/{id} - Failed to update appointment: id=%s, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id} - Appointment updated: id=%s, tenant=%s", appointmentID, tenantID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
