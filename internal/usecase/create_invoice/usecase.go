package create_invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	customerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/customer"
	invoiceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/invoice"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/retry"
)

// Количество попыток занять следующий номер счёта при конкурентном выставлении
const maxSequenceAttempts = 3

// UseCase use case для выставления счёта по записи
// Нумерация оптимистичная: номер вычисляется как max+1 и вставляется под
// уникальным ограничением; проигравший гонку повторяет со свежим max
type UseCase struct {
	invoiceRepo     InvoiceRepository
	appointmentRepo AppointmentRepository
	businessRepo    BusinessRepository
	customerRepo    CustomerRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	invoiceRepo InvoiceRepository,
	appointmentRepo AppointmentRepository,
	businessRepo BusinessRepository,
	customerRepo CustomerRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		invoiceRepo:     invoiceRepo,
		appointmentRepo: appointmentRepo,
		businessRepo:    businessRepo,
		customerRepo:    customerRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выставляет счёт по записи либо возвращает уже существующий
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateInvoice: tenant=%s, appointment=%s", req.TenantID, req.AppointmentID)

	// 1. Валидация входных данных
	if req.TenantID == uuid.Nil {
		return nil, fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}
	if req.AppointmentID == uuid.Nil {
		return nil, fmt.Errorf("%w: appointmentID is required", ErrInvalidInput)
	}

	// 2. Бизнес должен существовать и иметь включённые счета
	biz, err := uc.businessRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateInvoice: business not found for tenant=%s", req.TenantID)
			return nil, ErrBusinessNotConfigured
		}
		uc.logger.Error("CreateInvoice: failed to get business for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	if !biz.EnableInvoices {
		uc.logger.Warn("CreateInvoice: invoicing disabled for tenant=%s", req.TenantID)
		return nil, ErrInvoicingDisabled
	}

	// 3. Идемпотентность: по записи выставляется не более одного счёта
	existing, err := uc.findExisting(ctx, req)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		uc.logger.Info("CreateInvoice: invoice %s already exists for appointment=%s",
			existing.InvoiceNumber, req.AppointmentID)
		return mapToResponse(existing), nil
	}

	// 4. Получаем запись со снапшотом услуг
	appt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID, req.TenantID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("CreateInvoice: appointment id=%s not found for tenant=%s", req.AppointmentID, req.TenantID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("CreateInvoice: failed to get appointment id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 5. Снапшот клиента; отсутствие клиента не блокирует выставление
	customerName, customerEmail := uc.customerSnapshot(ctx, appt.CustomerID, req.TenantID)

	now := uc.timeProvider.Now().UTC()
	year := now.Year()

	var result *domain.Invoice

	// 6. Оптимистичное занятие номера: до трёх попыток на конфликт уникальности
	isSequenceConflict := func(err error) bool {
		return errors.Is(err, invoiceRepo.ErrUniqueViolation)
	}

	err = retry.Do(maxSequenceAttempts, isSequenceConflict, func(attempt int) error {
		// 6.1. Конкурент мог успеть выставить счёт по этой же записи
		if attempt > 1 {
			concurrent, err := uc.findExisting(ctx, req)
			if err != nil {
				return err
			}
			if concurrent != nil {
				result = concurrent
				return nil
			}
		}

		// 6.2. Следующий номер за год тенанта
		maxSeq, err := uc.invoiceRepo.GetMaxSequenceForYear(ctx, req.TenantID, year)
		if err != nil {
			uc.logger.Error("CreateInvoice: failed to get max sequence for tenant=%s year=%d: %v",
				req.TenantID, year, err)
			return fmt.Errorf("%w: failed to get max sequence: %v", ErrInternal, err)
		}
		number := domain.FormatInvoiceNumber(year, maxSeq+1)

		invoice := composeInvoice(appt, biz, customerName, customerEmail, number, now)

		// 6.3. Вставка под уникальным ограничением (tenant_id, invoice_number)
		// Шапка счёта и строки пишутся в одной транзакции: при сбое на строках
		// откатывается и шапка, осиротевший счёт без строк невозможен
		var created *domain.Invoice
		err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
			inserted, txErr := uc.invoiceRepo.Create(txCtx, invoice)
			if txErr != nil {
				return txErr
			}
			created = inserted
			return nil
		})
		if err != nil {
			if errors.Is(err, invoiceRepo.ErrUniqueViolation) {
				uc.logger.Warn("CreateInvoice: number %s lost the race (attempt %d/%d)",
					number, attempt, maxSequenceAttempts)
				return err
			}
			uc.logger.Error("CreateInvoice: failed to create invoice: %v", err)
			return fmt.Errorf("%w: failed to create invoice: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, invoiceRepo.ErrUniqueViolation) {
			uc.logger.Error("CreateInvoice: exhausted %d attempts for tenant=%s year=%d",
				maxSequenceAttempts, req.TenantID, year)
			return nil, ErrSequenceConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateInvoice: issued %s for appointment=%s", result.InvoiceNumber, req.AppointmentID)

	return mapToResponse(result), nil
}

// findExisting возвращает уже выставленный по записи счёт либо nil
func (uc *UseCase) findExisting(ctx context.Context, req *Request) (*domain.Invoice, error) {
	existing, err := uc.invoiceRepo.GetByAppointmentID(ctx, req.AppointmentID, req.TenantID)
	if err != nil {
		if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
			return nil, nil
		}
		uc.logger.Error("CreateInvoice: failed to check existing invoice: %v", err)
		return nil, fmt.Errorf("%w: failed to check existing invoice: %v", ErrInternal, err)
	}
	return existing, nil
}

// customerSnapshot возвращает имя и email клиента для снапшота счёта
func (uc *UseCase) customerSnapshot(ctx context.Context, customerID, tenantID uuid.UUID) (string, *string) {
	customer, err := uc.customerRepo.GetByID(ctx, customerID, tenantID)
	if err != nil {
		if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateInvoice: failed to get customer id=%s: %v", customerID, err)
		}
		return "Customer", nil
	}

	name := customer.FullName()
	if name == "" {
		name = "Customer"
	}
	return name, customer.Email
}

// composeInvoice собирает счёт со снапшотами и строками из услуг записи
// Каждая забронированная услуга дает одну строку с qty=1 по цене на момент брони
func composeInvoice(
	appt *domain.Appointment,
	biz *domain.Business,
	customerName string,
	customerEmail *string,
	number string,
	issuedAt time.Time,
) *domain.Invoice {
	invoice := &domain.Invoice{
		ID:            uuid.New(),
		TenantID:      appt.TenantID,
		AppointmentID: appt.ID,
		CustomerID:    appt.CustomerID,

		InvoiceNumber: number,
		IssuedAt:      issuedAt,
		Status:        domain.InvoiceStatusDraft,

		CustomerNameSnapshot:    customerName,
		CustomerEmailSnapshot:   customerEmail,
		BusinessNameSnapshot:    biz.Name,
		BusinessAddressSnapshot: biz.Address,
		BusinessLogoSnapshot:    biz.LogoURL,
		AppointmentDateSnapshot: appt.StartTime,

		Discount: 0,
		Tax:      0,
	}

	if appt.OrderNumber != "" {
		invoice.OrderNumberSnapshot = ptr.Ptr(appt.OrderNumber)
	}

	lines := make([]domain.InvoiceLine, 0, len(appt.Services))
	subtotal := 0.0
	for _, svc := range appt.Services {
		name := svc.Name
		if name == "" {
			name = "Service"
		}
		lines = append(lines, domain.InvoiceLine{
			ID:        uuid.New(),
			InvoiceID: invoice.ID,
			Name:      name,
			Category:  svc.Category,
			Qty:       1,
			UnitPrice: svc.PriceAtBooking,
			LineTotal: svc.PriceAtBooking,
		})
		subtotal += svc.PriceAtBooking
	}

	invoice.Lines = lines
	invoice.Subtotal = subtotal
	invoice.Total = invoice.Subtotal - invoice.Discount + invoice.Tax

	return invoice
}

func mapToResponse(inv *domain.Invoice) *Response {
	lines := make([]LineResponse, 0, len(inv.Lines))
	for _, line := range inv.Lines {
		lines = append(lines, LineResponse{
			Name:      line.Name,
			Category:  line.Category,
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}

	return &Response{
		ID:            inv.ID,
		AppointmentID: inv.AppointmentID,
		CustomerID:    inv.CustomerID,

		InvoiceNumber: inv.InvoiceNumber,
		Status:        string(inv.Status),
		IssuedAt:      inv.IssuedAt,

		CustomerName:    inv.CustomerNameSnapshot,
		CustomerEmail:   inv.CustomerEmailSnapshot,
		BusinessName:    inv.BusinessNameSnapshot,
		BusinessAddress: inv.BusinessAddressSnapshot,
		BusinessLogoURL: inv.BusinessLogoSnapshot,

		OrderNumber:     inv.OrderNumberSnapshot,
		AppointmentDate: inv.AppointmentDateSnapshot,

		Subtotal: inv.Subtotal,
		Discount: inv.Discount,
		Tax:      inv.Tax,
		Total:    inv.Total,

		Lines: lines,

		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}
