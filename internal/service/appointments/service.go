package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис чтения и жизненного цикла записей
// Создание и обновление с календарными проверками живут в usecase-слое
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись тенанта по ID
func (s *Service) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for tenant=%s", id, tenantID)

	appt, err := s.appointmentRepo.GetByID(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found for tenant=%s", id, tenantID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// GetAllByTenant получает все записи тенанта
func (s *Service) GetAllByTenant(ctx context.Context, tenantID uuid.UUID) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetAllByTenant: fetching appointments for tenant=%s", tenantID)

	appts, err := s.appointmentRepo.GetWithFilter(ctx, domain.AppointmentsFilter{TenantID: tenantID})
	if err != nil {
		s.logger.Error("GetAllByTenant: repository error for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetAllByTenant - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllByTenant: fetched %d appointments for tenant=%s", len(appts), tenantID)
	return models.FromDomainAppointmentList(appts), nil
}

// GetByCustomer получает записи клиента в рамках тенанта
func (s *Service) GetByCustomer(ctx context.Context, customerID, tenantID uuid.UUID) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetByCustomer: fetching appointments for customer=%s, tenant=%s", customerID, tenantID)

	appts, err := s.appointmentRepo.GetWithFilter(ctx, domain.AppointmentsFilter{
		TenantID:   tenantID,
		CustomerID: &customerID,
	})
	if err != nil {
		s.logger.Error("GetByCustomer: repository error for customer=%s: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetByCustomer - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(appts), nil
}

// GetByDateRange получает записи тенанта за период [start, end]
func (s *Service) GetByDateRange(ctx context.Context, req *models.GetByDateRangeRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetByDateRange: fetching appointments for tenant=%s, period=%s to %s",
		req.TenantID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	if req.EndDate.Before(req.StartDate) {
		s.logger.Warn("GetByDateRange: end date before start date for tenant=%s", req.TenantID)
		return nil, fmt.Errorf("%w: end date must not precede start date", ErrInvalidInput)
	}

	appts, err := s.appointmentRepo.GetWithFilter(ctx, domain.AppointmentsFilter{
		TenantID:  req.TenantID,
		StartDate: &req.StartDate,
		EndDate:   &req.EndDate,
	})
	if err != nil {
		s.logger.Error("GetByDateRange: repository error for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: GetByDateRange - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(appts), nil
}

// GetByStatus получает записи тенанта в указанном статусе
func (s *Service) GetByStatus(ctx context.Context, status string, tenantID uuid.UUID) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetByStatus: fetching appointments for tenant=%s, status=%s", tenantID, status)

	domainStatus, ok := models.ToDomainStatus(status)
	if !ok {
		s.logger.Warn("GetByStatus: invalid status=%s for tenant=%s", status, tenantID)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	appts, err := s.appointmentRepo.GetWithFilter(ctx, domain.AppointmentsFilter{
		TenantID: tenantID,
		Status:   &domainStatus,
	})
	if err != nil {
		s.logger.Error("GetByStatus: repository error for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetByStatus - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(appts), nil
}

// SetStatus выставляет статус записи, переходы между статусами не ограничиваются
func (s *Service) SetStatus(ctx context.Context, id, tenantID uuid.UUID, status string) error {
	s.logger.Info("SetStatus: setting status=%s for appointment id=%s, tenant=%s", status, id, tenantID)

	domainStatus, ok := models.ToDomainStatus(status)
	if !ok {
		s.logger.Warn("SetStatus: invalid status=%s for appointment id=%s", status, id)
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, tenantID, domainStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("SetStatus: appointment id=%s not found for tenant=%s", id, tenantID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("SetStatus: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: SetStatus - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Delete удаляет запись тенанта
func (s *Service) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	s.logger.Info("Delete: deleting appointment id=%s for tenant=%s", id, tenantID)

	if err := s.appointmentRepo.Delete(ctx, id, tenantID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%s not found for tenant=%s", id, tenantID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}
