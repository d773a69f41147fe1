package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/calendar"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	customerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/customer"
)

// UseCase use case для создания записи на приём
type UseCase struct {
	appointmentRepo AppointmentRepository
	businessRepo    BusinessRepository
	customerRepo    CustomerRepository
	catalogRepo     ServiceCatalogRepository
	holidayClient   HolidayClient
	mailSender      MailSender
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	businessRepo BusinessRepository,
	customerRepo CustomerRepository,
	catalogRepo ServiceCatalogRepository,
	holidayClient HolidayClient,
	mailSender MailSender,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		businessRepo:    businessRepo,
		customerRepo:    customerRepo,
		catalogRepo:     catalogRepo,
		holidayClient:   holidayClient,
		mailSender:      mailSender,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка пересечений и вставка выполняются в сериализуемой транзакции,
// чтобы две конкурентные записи не заняли один слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: tenant=%s, customer=%s, start=%s",
		req.TenantID, req.CustomerID, req.StartTime.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем клиента (в рамках тенанта)
	customer, err := uc.customerRepo.GetByID(ctx, req.CustomerID, req.TenantID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateAppointment: customer id=%s not found for tenant=%s", req.CustomerID, req.TenantID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get customer id=%s: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	// 3. Получаем профиль бизнеса
	biz, err := uc.businessRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateAppointment: business not found for tenant=%s", req.TenantID)
			return nil, ErrBusinessNotConfigured
		}
		uc.logger.Error("CreateAppointment: failed to get business for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 4. Календарные правила: будущее, открытый день, рабочие часы
	if rejection := validateCalendarRules(req.StartTime, now, biz); rejection != nil {
		uc.logger.Warn("CreateAppointment: scheduling rejected (%s): %s", rejection.Kind, rejection.Reason)
		return nil, rejection
	}

	// 5. Публичные праздники
	holidayDates, err := uc.holidayClient.GetHolidayDates(ctx, req.StartTime.Year(), biz.HolidayCountryCode())
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get holidays for year=%d country=%s: %v",
			req.StartTime.Year(), biz.HolidayCountryCode(), err)
		return nil, fmt.Errorf("%w: failed to get holidays: %v", ErrInternal, err)
	}
	if rejection := validateNotHoliday(req.StartTime, holidayDates); rejection != nil {
		uc.logger.Warn("CreateAppointment: scheduling rejected (%s): %s", rejection.Kind, rejection.Reason)
		return nil, rejection
	}

	orderNumber := strings.TrimSpace(req.OrderNumber)
	selectedIDs := dedupeServiceIDs(req.ServiceOfferingIDs)
	durationMinutes := biz.SlotDurationMinutes()

	var result *domain.Appointment

	// 6. Проверки слота и заказа, снапшот услуг и вставка в сериализуемой транзакции
	// Порядок ошибок фиксирован: занятый слот, затем дубль номера заказа,
	// затем невалидный выбор услуг
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Проверяем пересечение с активными записями тенанта
		available, err := uc.appointmentRepo.IsTimeSlotAvailable(txCtx, req.StartTime, durationMinutes, req.TenantID, nil)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check slot availability: %v", err)
			return fmt.Errorf("%w: failed to check slot availability: %v", ErrInternal, err)
		}
		if !available {
			uc.logger.Warn("CreateAppointment: slot %s is taken for tenant=%s",
				req.StartTime.Format("2006-01-02 15:04"), req.TenantID)
			return ErrSlotTaken
		}

		// 6.2. Проверяем уникальность номера заказа
		if orderNumber != "" {
			exists, err := uc.appointmentRepo.OrderNumberExists(txCtx, orderNumber, nil)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to check order number: %v", err)
				return fmt.Errorf("%w: failed to check order number: %v", ErrInternal, err)
			}
			if exists {
				uc.logger.Warn("CreateAppointment: order number %q already exists", orderNumber)
				return ErrDuplicateOrderNumber
			}
		}

		// 6.3. Разрешаем выбранные услуги и снимаем снапшот цен
		var serviceLines []domain.ServiceLine
		if len(selectedIDs) > 0 {
			offerings, err := uc.catalogRepo.GetByIDsForTenant(txCtx, selectedIDs, req.TenantID)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to resolve services: %v", err)
				return fmt.Errorf("%w: failed to resolve services: %v", ErrInternal, err)
			}
			// Чужие и несуществующие услуги выпадают из выборки
			if len(offerings) != len(selectedIDs) {
				uc.logger.Warn("CreateAppointment: invalid service selection, requested=%d resolved=%d",
					len(selectedIDs), len(offerings))
				return ErrInvalidServiceSelection
			}
			serviceLines = buildServiceLines(offerings)
		}

		// 6.4. Создаем запись
		appt := &domain.Appointment{
			ID:          uuid.New(),
			TenantID:    req.TenantID,
			CustomerID:  req.CustomerID,
			OrderNumber: orderNumber,
			StartTime:   req.StartTime,
			Description: req.Description,
			Status:      domain.StatusScheduled,
			Services:    serviceLines,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created id=%s for tenant=%s", result.ID, result.TenantID)

	// 7. Best-effort уведомление: ошибка отправки не влияет на результат
	if req.NotifyByEmail && customer.HasEmail() {
		uc.sendConfirmationEmail(customer, biz, result, durationMinutes)
	}

	return &Response{
		ID:           result.ID,
		CustomerID:   result.CustomerID,
		CustomerName: customer.FullName(),
		OrderNumber:  result.OrderNumber,
		StartTime:    result.StartTime,
		Description:  result.Description,
		Status:       string(result.Status),
		Services:     result.Services,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}

func (uc *UseCase) sendConfirmationEmail(customer *domain.Customer, biz *domain.Business, appt *domain.Appointment, durationMinutes int) {
	address := ""
	if biz.Address != nil {
		address = *biz.Address
	}

	icsBytes := calendar.BuildAppointmentICS(calendar.AppointmentEvent{
		AppointmentID:   appt.ID,
		BusinessName:    biz.Name,
		BusinessAddress: address,
		Start:           appt.StartTime,
		End:             domain.SlotEnd(appt.StartTime, durationMinutes),
		CustomerName:    customer.FullName(),
		OrderNumber:     appt.OrderNumber,
		Notes:           appt.Description,
	})

	subject := fmt.Sprintf("%s appointment", biz.Name)
	body := buildConfirmationBody(customer, biz, appt)

	if err := uc.mailSender.SendWithAttachment(*customer.Email, subject, body, icsBytes, "appointment.ics", "text/calendar"); err != nil {
		uc.logger.Error("CreateAppointment: failed to send confirmation email for id=%s: %v", appt.ID, err)
	}
}

func buildConfirmationBody(customer *domain.Customer, biz *domain.Business, appt *domain.Appointment) string {
	customerName := customer.FullName()
	if customerName == "" {
		customerName = "there"
	}

	businessName := biz.Name
	if strings.TrimSpace(businessName) == "" {
		businessName = "our business"
	}

	return fmt.Sprintf(`Greetings %s,

Your appointment at %s was successfully created.
See you on %s at %s.

Attached you will find a calendar file (appointment.ics) that you can open to add this appointment to your calendar
(Google Calendar, Outlook, Apple Calendar).

Thank you for choosing %s.

Best regards,
%s`,
		customerName,
		businessName,
		appt.StartTime.Format("Monday, 02 Jan 2006"),
		appt.StartTime.Format("15:04"),
		businessName,
		businessName,
	)
}
