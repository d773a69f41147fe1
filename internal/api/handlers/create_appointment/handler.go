package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody      = "invalid request body"
	msgTenantRequired          = "tenant id is required"
	msgCustomerNotFound        = "Customer not found."
	msgBusinessNotFound        = "Business not found."
	msgSlotTaken               = "The selected time overlaps with another appointment."
	msgDuplicateOrderNumber    = "Order number already exists. Please use a different order number."
	msgInvalidServiceSelection = "One or more selected services are invalid."
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		handlers.RespondBadRequest(w, msgTenantRequired)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID))
	if err != nil {
		// Отказ планирования несет дословную причину для формы
		var rejection *domain.SchedulingError
		if errors.As(err, &rejection) {
			h.logger.Warn("POST /appointments - Scheduling rejected: tenant=%s, reason=%s", tenantID, rejection.Reason)
			handlers.RespondUnprocessable(w, rejection.Reason)
			return
		}

		switch {
		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: tenant=%s", tenantID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrDuplicateOrderNumber):
			h.logger.Warn("POST /appointments - Duplicate order number: tenant=%s", tenantID)
			handlers.RespondConflict(w, msgDuplicateOrderNumber)

		case errors.Is(err, createAppointment.ErrCustomerNotFound):
			h.logger.Warn("POST /appointments - Customer not found: tenant=%s, customer=%s", tenantID, req.CustomerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createAppointment.ErrBusinessNotConfigured):
			h.logger.Warn("POST /appointments - Business not found: tenant=%s", tenantID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createAppointment.ErrInvalidServiceSelection):
			h.logger.Warn("POST /appointments - Invalid service selection: tenant=%s", tenantID)
			handlers.RespondBadRequest(w, msgInvalidServiceSelection)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: tenant=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: tenant=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s, tenant=%s", result.ID, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
