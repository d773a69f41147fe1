package get_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

const (
	msgTenantRequired    = "tenant id is required"
	msgInvalidCustomerID = "customer_id must be a valid UUID"
	msgInvalidDate       = "dates must be in YYYY-MM-DD format"
	msgIncompleteRange   = "both start_date and end_date are required for a range query"
	msgInvalidFilter     = "invalid filter parameters"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Поддерживает взаимоисключающие фильтры: customer_id, status,
// либо период start_date + end_date; без фильтров - все записи тенанта
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		handlers.RespondBadRequest(w, msgTenantRequired)
		return
	}

	query := r.URL.Query()

	var (
		result *models.AppointmentListResponse
		err    error
	)

	switch {
	case query.Get("customer_id") != "":
		customerID, parseErr := uuid.Parse(query.Get("customer_id"))
		if parseErr != nil {
			h.logger.Warn("GET /appointments - Invalid customer_id: %v", parseErr)
			handlers.RespondBadRequest(w, msgInvalidCustomerID)
			return
		}
		result, err = h.service.GetByCustomer(r.Context(), customerID, tenantID)

	case query.Get("start_date") != "" || query.Get("end_date") != "":
		if query.Get("start_date") == "" || query.Get("end_date") == "" {
			handlers.RespondBadRequest(w, msgIncompleteRange)
			return
		}
		startDate, parseErr := time.Parse(domain.DateFormat, query.Get("start_date"))
		if parseErr != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		endDate, parseErr := time.Parse(domain.DateFormat, query.Get("end_date"))
		if parseErr != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		// Конец периода включает весь последний день
		result, err = h.service.GetByDateRange(r.Context(), &models.GetByDateRangeRequest{
			TenantID:  tenantID,
			StartDate: startDate,
			EndDate:   endDate.Add(24*time.Hour - time.Nanosecond),
		})

	case query.Get("status") != "":
		result, err = h.service.GetByStatus(r.Context(), query.Get("status"), tenantID)

	default:
		result, err = h.service.GetAllByTenant(r.Context(), tenantID)
	}

	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /appointments - Invalid filter: tenant=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /appointments - Failed to list appointments: tenant=%s, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
