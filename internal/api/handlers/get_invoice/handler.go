package get_invoice

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/invoices"
)

const (
	msgTenantRequired   = "tenant id is required"
	msgInvalidInvoiceID = "invoice id must be a valid UUID"
	msgInvoiceNotFound  = "Invoice not found."
)

type Handler struct {
	service InvoicesService
	logger  Logger
}

func NewHandler(service InvoicesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/invoices/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		handlers.RespondBadRequest(w, msgTenantRequired)
		return
	}

	invoiceID, err := uuid.Parse(mux.Vars(r)["invoiceId"])
	if err != nil {
		h.logger.Warn("GET /invoices/{id} - Invalid invoice id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInvoiceID)
		return
	}

	result, err := h.service.GetByID(r.Context(), invoiceID, tenantID)
	if err != nil {
		if errors.Is(err, invoices.ErrInvoiceNotFound) {
			h.logger.Warn("GET /invoices/{id} - Invoice not found: id=%s, tenant=%s", invoiceID, tenantID)
			handlers.RespondNotFound(w, msgInvoiceNotFound)
			return
		}
		h.logger.Error("GET /invoices/{id} - Failed to get invoice: id=%s, error=%v", invoiceID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
