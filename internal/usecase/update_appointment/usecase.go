package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case для обновления записи на приём
type UseCase struct {
	appointmentRepo AppointmentRepository
	businessRepo    BusinessRepository
	catalogRepo     ServiceCatalogRepository
	holidayClient   HolidayClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	businessRepo BusinessRepository,
	catalogRepo ServiceCatalogRepository,
	holidayClient HolidayClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		businessRepo:    businessRepo,
		catalogRepo:     catalogRepo,
		holidayClient:   holidayClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case обновления записи
// Календарные правила и пересечения перепроверяются только при переносе времени,
// сама запись при этом исключается из множества конфликтов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: tenant=%s, id=%s", req.TenantID, req.AppointmentID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем текущую запись
	appt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID, req.TenantID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateAppointment: appointment id=%s not found for tenant=%s", req.AppointmentID, req.TenantID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to get appointment id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 3. Получаем профиль бизнеса
	biz, err := uc.businessRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("UpdateAppointment: business not found for tenant=%s", req.TenantID)
			return nil, ErrBusinessNotConfigured
		}
		uc.logger.Error("UpdateAppointment: failed to get business for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	durationMinutes := biz.SlotDurationMinutes()
	rescheduled := !req.StartTime.IsZero() && !req.StartTime.Equal(appt.StartTime)

	// 4. При переносе времени запускаем полный цикл календарных проверок
	if rescheduled {
		if rejection := uc.validateSchedule(ctx, req.StartTime, now, biz); rejection != nil {
			return nil, rejection
		}
		appt.StartTime = req.StartTime
	}

	// 5. Номер заказа обязателен при обновлении
	newOrderNumber := strings.TrimSpace(req.OrderNumber)
	if newOrderNumber == "" {
		uc.logger.Warn("UpdateAppointment: empty order number for id=%s", req.AppointmentID)
		return nil, ErrOrderNumberRequired
	}
	orderNumberChanged := newOrderNumber != appt.OrderNumber

	// 6. Пустое описание сохраняет текущее
	if strings.TrimSpace(req.Description) != "" {
		appt.Description = req.Description
	}

	// 7. Статус выставляется безусловно, переходы не ограничиваются
	appt.Status = req.Status

	selectedIDs := dedupeServiceIDs(req.ServiceOfferingIDs)

	var result *domain.Appointment

	// 8. Конкурентные проверки, снапшот услуг и запись в сериализуемой транзакции
	// Порядок ошибок фиксирован: занятый слот, затем дубль номера заказа,
	// затем невалидный выбор услуг
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. При переносе проверяем пересечения, исключая саму запись
		if rescheduled {
			available, err := uc.appointmentRepo.IsTimeSlotAvailable(txCtx, appt.StartTime, durationMinutes, req.TenantID, &appt.ID)
			if err != nil {
				uc.logger.Error("UpdateAppointment: failed to check slot availability: %v", err)
				return fmt.Errorf("%w: failed to check slot availability: %v", ErrInternal, err)
			}
			if !available {
				uc.logger.Warn("UpdateAppointment: slot %s is taken for tenant=%s",
					appt.StartTime.Format("2006-01-02 15:04"), req.TenantID)
				return ErrSlotTaken
			}
		}

		// 8.2. При смене номера заказа проверяем уникальность, исключая саму запись
		if orderNumberChanged {
			exists, err := uc.appointmentRepo.OrderNumberExists(txCtx, newOrderNumber, &appt.ID)
			if err != nil {
				uc.logger.Error("UpdateAppointment: failed to check order number: %v", err)
				return fmt.Errorf("%w: failed to check order number: %v", ErrInternal, err)
			}
			if exists {
				uc.logger.Warn("UpdateAppointment: order number %q already exists", newOrderNumber)
				return ErrDuplicateOrderNumber
			}
			appt.OrderNumber = newOrderNumber
		}

		// 8.3. Строки услуг заменяются целиком (пустой выбор очищает снапшот)
		serviceLines := make([]domain.ServiceLine, 0, len(selectedIDs))
		if len(selectedIDs) > 0 {
			offerings, err := uc.catalogRepo.GetByIDsForTenant(txCtx, selectedIDs, req.TenantID)
			if err != nil {
				uc.logger.Error("UpdateAppointment: failed to resolve services: %v", err)
				return fmt.Errorf("%w: failed to resolve services: %v", ErrInternal, err)
			}
			if len(offerings) != len(selectedIDs) {
				uc.logger.Warn("UpdateAppointment: invalid service selection, requested=%d resolved=%d",
					len(selectedIDs), len(offerings))
				return ErrInvalidServiceSelection
			}
			for _, offering := range offerings {
				serviceLines = append(serviceLines, domain.ServiceLine{
					ServiceID:      offering.ID,
					Name:           offering.Name,
					Category:       offering.Category,
					PriceAtBooking: offering.Price,
				})
			}
		}
		appt.Services = serviceLines

		updated, err := uc.appointmentRepo.Update(txCtx, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment: %v", err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: updated id=%s for tenant=%s", result.ID, result.TenantID)

	return &Response{
		ID:          result.ID,
		CustomerID:  result.CustomerID,
		OrderNumber: result.OrderNumber,
		StartTime:   result.StartTime,
		Description: result.Description,
		Status:      string(result.Status),
		Services:    result.Services,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// validateSchedule повторяет календарные проверки создания записи для нового времени
// Порядок фиксированный: будущее → открытый день → рабочие часы → праздник
func (uc *UseCase) validateSchedule(ctx context.Context, start, now time.Time, biz *domain.Business) error {
	// 1. Новое время должно быть в будущем
	if !start.After(now) {
		rejection := domain.NewPastRejection()
		uc.logger.Warn("UpdateAppointment: scheduling rejected (%s): %s", rejection.Kind, rejection.Reason)
		return rejection
	}

	// 2. День недели должен быть открыт
	if !biz.IsOpenOn(start.Weekday()) {
		rejection := domain.NewClosedDayRejection()
		uc.logger.Warn("UpdateAppointment: scheduling rejected (%s): %s", rejection.Kind, rejection.Reason)
		return rejection
	}

	// 3. Время должно попадать в рабочее окно [start, end)
	t := types.NewTimeString(start)
	if t.IsBefore(biz.WorkDayStart) || !t.IsBefore(biz.WorkDayEnd) {
		rejection := domain.NewOutsideHoursRejection(biz.WorkDayStart, biz.WorkDayEnd)
		uc.logger.Warn("UpdateAppointment: scheduling rejected (%s): %s", rejection.Kind, rejection.Reason)
		return rejection
	}

	// 4. Дата не должна быть публичным праздником
	holidayDates, err := uc.holidayClient.GetHolidayDates(ctx, start.Year(), biz.HolidayCountryCode())
	if err != nil {
		uc.logger.Error("UpdateAppointment: failed to get holidays for year=%d country=%s: %v",
			start.Year(), biz.HolidayCountryCode(), err)
		return fmt.Errorf("%w: failed to get holidays: %v", ErrInternal, err)
	}

	if holiday, isHoliday := holidayDates[start.Format(domain.DateFormat)]; isHoliday {
		rejection := domain.NewHolidayRejection(holiday.DisplayName())
		uc.logger.Warn("UpdateAppointment: scheduling rejected (%s): %s", rejection.Kind, rejection.Reason)
		return rejection
	}

	return nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID == uuid.Nil {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	if req.AppointmentID == uuid.Nil {
		return fmt.Errorf("%w: appointmentID is required", ErrInvalidInput)
	}

	if !req.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	if len(req.OrderNumber) > domain.MaxOrderNumberLength {
		return fmt.Errorf("%w: orderNumber exceeds %d characters", ErrInvalidInput, domain.MaxOrderNumberLength)
	}

	if len(req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	return nil
}

// dedupeServiceIDs отбрасывает нулевые и повторяющиеся ID услуг, сохраняя порядок
func dedupeServiceIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	return result
}
