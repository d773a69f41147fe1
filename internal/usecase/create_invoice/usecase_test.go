package create_invoice

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	customerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/customer"
	invoiceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/invoice"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type txMarkerKey struct{}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(context.WithValue(ctx, txMarkerKey{}, true))
}

type fakeInvoiceRepo struct {
	existing    *domain.Invoice
	existingSeq []*domain.Invoice // ответы findExisting по порядку вызовов
	maxSeq      int
	createErrs  []error // ошибки Create по порядку вызовов

	getCalls    int
	createCalls int
	inTxCalls   int
	created     []*domain.Invoice
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	if ctx.Value(txMarkerKey{}) != nil {
		r.inTxCalls++
	}
	idx := r.createCalls
	r.createCalls++
	if idx < len(r.createErrs) && r.createErrs[idx] != nil {
		return nil, r.createErrs[idx]
	}
	stored := *inv
	stored.CreatedAt = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	stored.UpdatedAt = stored.CreatedAt
	r.created = append(r.created, &stored)
	return &stored, nil
}

func (r *fakeInvoiceRepo) GetByAppointmentID(context.Context, uuid.UUID, uuid.UUID) (*domain.Invoice, error) {
	idx := r.getCalls
	r.getCalls++
	if idx < len(r.existingSeq) {
		if inv := r.existingSeq[idx]; inv != nil {
			return inv, nil
		}
		return nil, invoiceRepo.ErrInvoiceNotFound
	}
	if r.existing != nil {
		return r.existing, nil
	}
	return nil, invoiceRepo.ErrInvoiceNotFound
}

func (r *fakeInvoiceRepo) GetMaxSequenceForYear(context.Context, uuid.UUID, int) (int, error) {
	return r.maxSeq, nil
}

type fakeAppointmentRepo struct {
	appt *domain.Appointment
	err  error
}

func (r *fakeAppointmentRepo) GetByID(context.Context, uuid.UUID, uuid.UUID) (*domain.Appointment, error) {
	return r.appt, r.err
}

type fakeBusinessRepo struct {
	biz *domain.Business
	err error
}

func (r *fakeBusinessRepo) GetByID(context.Context, uuid.UUID) (*domain.Business, error) {
	return r.biz, r.err
}

type fakeCustomerRepo struct {
	customer *domain.Customer
	err      error
}

func (r *fakeCustomerRepo) GetByID(context.Context, uuid.UUID, uuid.UUID) (*domain.Customer, error) {
	return r.customer, r.err
}

type fakeDeps struct {
	*UseCase
	invoices  *fakeInvoiceRepo
	customers *fakeCustomerRepo
	business  *fakeBusinessRepo
	tx        *fakeTxManager
}

func newFixture() (*fakeDeps, *Request) {
	tenantID := uuid.New()
	apptID := uuid.New()

	invoices := &fakeInvoiceRepo{}
	business := &fakeBusinessRepo{
		biz: &domain.Business{
			ID:             tenantID,
			Name:           "Glow Salon",
			Address:        ptr.Ptr("1 Main St"),
			EnableInvoices: true,
		},
	}
	customers := &fakeCustomerRepo{
		customer: &domain.Customer{
			ID:        uuid.New(),
			TenantID:  tenantID,
			FirstName: "Ana",
			LastName:  "Petrova",
			Email:     ptr.Ptr("ana@example.com"),
		},
	}

	appts := &fakeAppointmentRepo{
		appt: &domain.Appointment{
			ID:          apptID,
			TenantID:    tenantID,
			CustomerID:  customers.customer.ID,
			OrderNumber: "ORD-17",
			StartTime:   time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
			Status:      domain.StatusCompleted,
			Services: []domain.ServiceLine{
				{ServiceID: uuid.New(), Name: "Haircut", PriceAtBooking: 20},
				{ServiceID: uuid.New(), Name: "Coloring", PriceAtBooking: 55.5},
			},
		},
	}

	tx := &fakeTxManager{}
	uc := NewUseCase(invoices, appts, business, customers, tx, nopLogger{})
	uc.timeProvider = fixedClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}

	return &fakeDeps{
			UseCase:   uc,
			invoices:  invoices,
			customers: customers,
			business:  business,
			tx:        tx,
		}, &Request{
			TenantID:      tenantID,
			AppointmentID: apptID,
		}
}

func TestExecute_IssuesFirstInvoice(t *testing.T) {
	deps, req := newFixture()

	resp, err := deps.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-0001", resp.InvoiceNumber)
	assert.Equal(t, string(domain.InvoiceStatusDraft), resp.Status)
	assert.Equal(t, "Ana Petrova", resp.CustomerName)
	assert.Equal(t, "Glow Salon", resp.BusinessName)
	require.NotNil(t, resp.OrderNumber)
	assert.Equal(t, "ORD-17", *resp.OrderNumber)

	require.Len(t, resp.Lines, 2)
	assert.Equal(t, 1, resp.Lines[0].Qty)
	assert.Equal(t, 20.0, resp.Lines[0].LineTotal)

	assert.Equal(t, 75.5, resp.Subtotal)
	assert.Equal(t, 0.0, resp.Discount)
	assert.Equal(t, 0.0, resp.Tax)
	assert.Equal(t, 75.5, resp.Total)
}

func TestExecute_ContinuesSequence(t *testing.T) {
	deps, req := newFixture()
	deps.invoices.maxSeq = 41

	resp, err := deps.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0042", resp.InvoiceNumber)
}

func TestExecute_IdempotentPerAppointment(t *testing.T) {
	deps, req := newFixture()
	deps.invoices.existing = &domain.Invoice{
		ID:            uuid.New(),
		TenantID:      req.TenantID,
		AppointmentID: req.AppointmentID,
		InvoiceNumber: "INV-2026-0007",
		Status:        domain.InvoiceStatusSent,
	}

	resp, err := deps.Execute(context.Background(), req)
	require.NoError(t, err)

	// Возвращается уже выставленный счёт, новый не создается
	assert.Equal(t, "INV-2026-0007", resp.InvoiceNumber)
	assert.Equal(t, string(domain.InvoiceStatusSent), resp.Status)
	assert.Equal(t, 0, deps.invoices.createCalls)
}

func TestExecute_WritesInvoiceWithinTransaction(t *testing.T) {
	deps, req := newFixture()

	_, err := deps.Execute(context.Background(), req)
	require.NoError(t, err)

	// Шапка и строки счёта пишутся одним вызовом репозитория в транзакции
	assert.Equal(t, 1, deps.tx.calls)
	assert.Equal(t, 1, deps.invoices.createCalls)
	assert.Equal(t, 1, deps.invoices.inTxCalls)
}

func TestExecute_EachAttemptRunsInOwnTransaction(t *testing.T) {
	deps, req := newFixture()
	deps.invoices.createErrs = []error{invoiceRepo.ErrUniqueViolation, nil}

	_, err := deps.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, deps.tx.calls)
	assert.Equal(t, 2, deps.invoices.inTxCalls)
}

func TestExecute_CreateFailureSurfacesAsInternal(t *testing.T) {
	deps, req := newFixture()
	deps.invoices.createErrs = []error{invoiceRepo.ErrExecQuery}

	_, err := deps.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1, deps.invoices.createCalls)
}

func TestExecute_RetriesOnUniqueViolation(t *testing.T) {
	deps, req := newFixture()

	// Первая вставка проигрывает гонку за номер, вторая проходит
	deps.invoices.createErrs = []error{invoiceRepo.ErrUniqueViolation, nil}

	resp, err := deps.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, deps.invoices.createCalls)
	assert.NotEmpty(t, resp.InvoiceNumber)
}

func TestExecute_RetryConvergesOnConcurrentInvoice(t *testing.T) {
	deps, req := newFixture()

	// Конкурент успел выставить счёт по этой же записи между попытками
	concurrent := &domain.Invoice{
		ID:            uuid.New(),
		AppointmentID: req.AppointmentID,
		InvoiceNumber: "INV-2026-0003",
		Status:        domain.InvoiceStatusDraft,
	}
	deps.invoices.existingSeq = []*domain.Invoice{nil, concurrent}
	deps.invoices.createErrs = []error{invoiceRepo.ErrUniqueViolation}

	resp, err := deps.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0003", resp.InvoiceNumber)
	assert.Equal(t, 1, deps.invoices.createCalls)
}

func TestExecute_SequenceConflictAfterExhaustedRetries(t *testing.T) {
	deps, req := newFixture()
	deps.invoices.createErrs = []error{
		invoiceRepo.ErrUniqueViolation,
		invoiceRepo.ErrUniqueViolation,
		invoiceRepo.ErrUniqueViolation,
	}

	_, err := deps.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSequenceConflict)
	assert.Equal(t, 3, deps.invoices.createCalls)
}

func TestExecute_InvoicingDisabled(t *testing.T) {
	deps, req := newFixture()
	deps.business.biz.EnableInvoices = false

	_, err := deps.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvoicingDisabled)
}

func TestExecute_BusinessNotConfigured(t *testing.T) {
	deps, req := newFixture()
	deps.business.biz = nil
	deps.business.err = businessRepo.ErrBusinessNotFound

	_, err := deps.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBusinessNotConfigured)
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	deps, req := newFixture()
	deps.appointmentRepo = &fakeAppointmentRepo{err: appointmentRepo.ErrAppointmentNotFound}

	_, err := deps.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_MissingCustomerFallsBackToPlaceholder(t *testing.T) {
	deps, req := newFixture()
	deps.customers.customer = nil
	deps.customers.err = customerRepo.ErrCustomerNotFound

	resp, err := deps.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Customer", resp.CustomerName)
	assert.Nil(t, resp.CustomerEmail)
}

func TestExecute_BlankLineNameFallsBackToService(t *testing.T) {
	deps, req := newFixture()
	deps.invoices.maxSeq = 0

	appt := &fakeAppointmentRepo{
		appt: &domain.Appointment{
			ID:         req.AppointmentID,
			TenantID:   req.TenantID,
			CustomerID: uuid.New(),
			StartTime:  time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
			Services: []domain.ServiceLine{
				{ServiceID: uuid.New(), Name: "", PriceAtBooking: 10},
			},
		},
	}
	deps.appointmentRepo = appt

	resp, err := deps.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "Service", resp.Lines[0].Name)

	// Пустой номер заказа не попадает в снапшот
	assert.Nil(t, resp.OrderNumber)
}

func TestExecute_ValidatesInput(t *testing.T) {
	deps, req := newFixture()

	req.TenantID = uuid.Nil
	_, err := deps.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, req2 := newFixture()
	req2.AppointmentID = uuid.Nil
	_, err = deps.Execute(context.Background(), req2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
