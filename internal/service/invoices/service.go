package invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	invoiceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/invoice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/invoices/models"
)

// Service сервис чтения счетов
// Счета после выставления неизменяемы (кроме статуса), поэтому сервис только читает
type Service struct {
	invoiceRepo InvoiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса счетов
func NewService(invoiceRepo InvoiceRepository, logger Logger) *Service {
	return &Service{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// GetByID получает счёт тенанта по ID
func (s *Service) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*models.InvoiceResponse, error) {
	s.logger.Info("GetByID: fetching invoice id=%s for tenant=%s", id, tenantID)

	inv, err := s.invoiceRepo.GetByID(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
			s.logger.Warn("GetByID: invoice id=%s not found for tenant=%s", id, tenantID)
			return nil, ErrInvoiceNotFound
		}
		s.logger.Error("GetByID: repository error for invoice id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainInvoice(inv), nil
}

// GetAllByTenant получает все счета тенанта
func (s *Service) GetAllByTenant(ctx context.Context, tenantID uuid.UUID) (*models.InvoiceListResponse, error) {
	s.logger.Info("GetAllByTenant: fetching invoices for tenant=%s", tenantID)

	invoices, err := s.invoiceRepo.GetAllByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("GetAllByTenant: repository error for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetAllByTenant - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllByTenant: fetched %d invoices for tenant=%s", len(invoices), tenantID)
	return models.FromDomainInvoiceList(invoices), nil
}
