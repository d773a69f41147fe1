package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	customerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/nager"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAppointmentRepo struct {
	available    bool
	availableErr error
	orderExists  bool
	createErr    error

	gotStart       time.Time
	gotDuration    int
	gotExclude     *uuid.UUID
	orderChecked   bool
	gotOrderNumber string
	created        *domain.Appointment
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	stored := *appt
	stored.CreatedAt = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	stored.UpdatedAt = stored.CreatedAt
	r.created = &stored
	return &stored, nil
}

func (r *fakeAppointmentRepo) IsTimeSlotAvailable(_ context.Context, start time.Time, durationMinutes int, _ uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	r.gotStart = start
	r.gotDuration = durationMinutes
	r.gotExclude = excludeID
	return r.available, r.availableErr
}

func (r *fakeAppointmentRepo) OrderNumberExists(_ context.Context, orderNumber string, _ *uuid.UUID) (bool, error) {
	r.orderChecked = true
	r.gotOrderNumber = orderNumber
	return r.orderExists, nil
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

type fakeCatalogRepo struct {
	offerings []*domain.ServiceOffering
	err       error

	gotIDs []uuid.UUID
}

func (r *fakeCatalogRepo) GetByIDsForTenant(_ context.Context, ids []uuid.UUID, _ uuid.UUID) ([]*domain.ServiceOffering, error) {
	r.gotIDs = ids
	return r.offerings, r.err
}

type fakeHolidayClient struct {
	holidays map[string]nager.Holiday
	err      error
}

func (c *fakeHolidayClient) GetHolidayDates(context.Context, int, string) (map[string]nager.Holiday, error) {
	return c.holidays, c.err
}

type fakeMailSender struct {
	err error

	sent     bool
	gotTo    string
	gotBody  string
	gotFile  string
	gotMime  string
	gotBytes []byte
}

func (s *fakeMailSender) SendWithAttachment(to, _, body string, attachment []byte, filename, mimeType string) error {
	s.sent = true
	s.gotTo = to
	s.gotBody = body
	s.gotBytes = attachment
	s.gotFile = filename
	s.gotMime = mimeType
	return s.err
}

type fixture struct {
	uc       *UseCase
	appts    *fakeAppointmentRepo
	catalog  *fakeCatalogRepo
	holidays *fakeHolidayClient
	mail     *fakeMailSender

	tenantID   uuid.UUID
	customerID uuid.UUID
	now        time.Time
}

// Бизнес открыт пн-пт 09:00-17:00, слоты по 30 минут
func newFixture() *fixture {
	f := &fixture{
		appts:      &fakeAppointmentRepo{available: true},
		catalog:    &fakeCatalogRepo{},
		holidays:   &fakeHolidayClient{holidays: map[string]nager.Holiday{}},
		mail:       &fakeMailSender{},
		tenantID:   uuid.New(),
		customerID: uuid.New(),
		now:        time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC), // вторник
	}

	biz := &domain.Business{
		ID:                 f.tenantID,
		Name:               "Glow Salon",
		Address:            ptr.Ptr("1 Main St"),
		CountryCode:        "MK",
		DefaultSlotMinutes: 30,
		WorkDayStart:       types.TimeString("09:00"),
		WorkDayEnd:         types.TimeString("17:00"),
		OpenMon:            true,
		OpenTue:            true,
		OpenWed:            true,
		OpenThu:            true,
		OpenFri:            true,
	}

	customer := &domain.Customer{
		ID:        f.customerID,
		TenantID:  f.tenantID,
		FirstName: "Ana",
		LastName:  "Petrova",
		Email:     ptr.Ptr("ana@example.com"),
	}

	f.uc = NewUseCase(
		f.appts,
		&fakeBusinessRepo{biz: biz},
		&fakeCustomerRepo{customer: customer},
		f.catalog,
		f.holidays,
		f.mail,
		fakeTxManager{},
		nopLogger{},
	)
	f.uc.timeProvider = fixedClock{now: f.now}

	return f
}

func (f *fixture) request() *Request {
	return &Request{
		TenantID:   f.tenantID,
		CustomerID: f.customerID,
		StartTime:  time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), // понедельник
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	req := f.request()
	req.OrderNumber = "  ORD-17  "
	req.Description = "First visit"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, f.customerID, resp.CustomerID)
	assert.Equal(t, "Ana Petrova", resp.CustomerName)
	assert.Equal(t, "ORD-17", resp.OrderNumber) // пробелы обрезаются
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, req.StartTime, resp.StartTime)

	assert.Equal(t, req.StartTime, f.appts.gotStart)
	assert.Equal(t, 30, f.appts.gotDuration)
	assert.Nil(t, f.appts.gotExclude) // при создании ничего не исключается
}

func TestExecute_RejectsPastSlot(t *testing.T) {
	f := newFixture()

	req := f.request()
	req.StartTime = f.now.Add(-time.Hour)

	_, err := f.uc.Execute(context.Background(), req)

	var rejection *domain.SchedulingError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, domain.RejectionPast, rejection.Kind)
	assert.Equal(t, "Appointment date/time must be in the future.", rejection.Reason)
}

func TestExecute_RejectsExactlyNow(t *testing.T) {
	f := newFixture()

	req := f.request()
	req.StartTime = f.now

	var rejection *domain.SchedulingError
	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, domain.RejectionPast, rejection.Kind)
}

func TestExecute_PastWinsOverClosedDay(t *testing.T) {
	f := newFixture()

	// Прошедшее воскресенье: порядок проверок отдает приоритет "прошлому"
	req := f.request()
	req.StartTime = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	var rejection *domain.SchedulingError
	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, domain.RejectionPast, rejection.Kind)
}

func TestExecute_RejectsClosedDay(t *testing.T) {
	f := newFixture()

	req := f.request()
	req.StartTime = time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC) // воскресенье

	var rejection *domain.SchedulingError
	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, domain.RejectionClosedDay, rejection.Kind)
	assert.Equal(t, "Business is closed on the selected day.", rejection.Reason)
}

func TestExecute_RejectsOutsideWorkingHours(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name string
		time time.Time
	}{
		{"before opening", time.Date(2026, 9, 7, 8, 30, 0, 0, time.UTC)},
		{"at closing", time.Date(2026, 9, 7, 17, 0, 0, 0, time.UTC)},
		{"after closing", time.Date(2026, 9, 7, 18, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request()
			req.StartTime = tt.time

			var rejection *domain.SchedulingError
			_, err := f.uc.Execute(context.Background(), req)
			require.ErrorAs(t, err, &rejection)
			assert.Equal(t, domain.RejectionOutsideHours, rejection.Kind)
			assert.Equal(t, "Appointment must be between 09:00 and 17:00.", rejection.Reason)
		})
	}
}

func TestExecute_AllowsOpeningBoundary(t *testing.T) {
	f := newFixture()

	// Рабочее окно полуоткрытое: 09:00 включается, 17:00 — нет
	req := f.request()
	req.StartTime = time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_RejectsHoliday(t *testing.T) {
	f := newFixture()
	f.holidays.holidays = map[string]nager.Holiday{
		"2026-09-07": {Date: "2026-09-07", LocalName: "Ден на независноста", Name: "Independence Day"},
	}

	var rejection *domain.SchedulingError
	_, err := f.uc.Execute(context.Background(), f.request())
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, domain.RejectionHoliday, rejection.Kind)
	assert.Equal(t, "Cannot create an appointment on a public holiday: Ден на независноста.", rejection.Reason)
}

func TestExecute_HolidayFetchFailureIsInternal(t *testing.T) {
	f := newFixture()
	f.holidays.err = errors.New("nager is down")

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_SlotTaken(t *testing.T) {
	f := newFixture()
	f.appts.available = false

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_SlotTakenWinsOverInvalidServices(t *testing.T) {
	f := newFixture()
	f.appts.available = false

	// Выбранная услуга не разрешилась бы, но до каталога дело не доходит
	req := f.request()
	req.ServiceOfferingIDs = []uuid.UUID{uuid.New()}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, f.catalog.gotIDs)
}

func TestExecute_DuplicateOrderNumberWinsOverInvalidServices(t *testing.T) {
	f := newFixture()
	f.appts.orderExists = true

	req := f.request()
	req.OrderNumber = "ORD-17"
	req.ServiceOfferingIDs = []uuid.UUID{uuid.New()}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateOrderNumber)
	assert.Nil(t, f.catalog.gotIDs)
}

func TestExecute_DuplicateOrderNumber(t *testing.T) {
	f := newFixture()
	f.appts.orderExists = true

	req := f.request()
	req.OrderNumber = "ORD-17"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateOrderNumber)
	assert.Equal(t, "ORD-17", f.appts.gotOrderNumber)
}

func TestExecute_EmptyOrderNumberSkipsCheck(t *testing.T) {
	f := newFixture()
	f.appts.orderExists = true // проверка не должна запускаться

	req := f.request()
	req.OrderNumber = "   "

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, f.appts.orderChecked)
	assert.Equal(t, "", resp.OrderNumber)
}

func TestExecute_InvalidServiceSelection(t *testing.T) {
	f := newFixture()

	// Каталог разрешает только одну услугу из двух запрошенных
	f.catalog.offerings = []*domain.ServiceOffering{
		{ID: uuid.New(), Name: "Haircut", Price: 20},
	}

	req := f.request()
	req.ServiceOfferingIDs = []uuid.UUID{uuid.New(), uuid.New()}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidServiceSelection)
}

func TestExecute_SnapshotsServices(t *testing.T) {
	f := newFixture()

	svcID := uuid.New()
	f.catalog.offerings = []*domain.ServiceOffering{
		{ID: svcID, Name: "Haircut", Category: ptr.Ptr("Hair"), Price: 20},
	}

	req := f.request()
	// Дубликаты и нулевые ID отбрасываются до запроса в каталог
	req.ServiceOfferingIDs = []uuid.UUID{svcID, svcID, uuid.Nil}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{svcID}, f.catalog.gotIDs)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, svcID, resp.Services[0].ServiceID)
	assert.Equal(t, "Haircut", resp.Services[0].Name)
	assert.Equal(t, 20.0, resp.Services[0].PriceAtBooking)
}

func TestExecute_SendsConfirmationEmail(t *testing.T) {
	f := newFixture()

	req := f.request()
	req.NotifyByEmail = true

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.True(t, f.mail.sent)
	assert.Equal(t, "ana@example.com", f.mail.gotTo)
	assert.Equal(t, "appointment.ics", f.mail.gotFile)
	assert.Equal(t, "text/calendar", f.mail.gotMime)
	assert.Contains(t, f.mail.gotBody, "Greetings Ana Petrova,")
	assert.Contains(t, f.mail.gotBody, "Monday, 07 Sep 2026")
	assert.Contains(t, string(f.mail.gotBytes), "BEGIN:VCALENDAR")
}

func TestExecute_EmailFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture()
	f.mail.err = errors.New("smtp timeout")

	req := f.request()
	req.NotifyByEmail = true

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_NoEmailWithoutNotifyFlag(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	assert.False(t, f.mail.sent)
}

func TestExecute_CustomerNotFound(t *testing.T) {
	f := newFixture()

	f.uc.customerRepo = &fakeCustomerRepo{err: customerRepo.ErrCustomerNotFound}

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_BusinessNotConfigured(t *testing.T) {
	f := newFixture()

	f.uc.businessRepo = &fakeBusinessRepo{err: businessRepo.ErrBusinessNotFound}

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrBusinessNotConfigured)
}

func TestExecute_ValidatesInput(t *testing.T) {
	f := newFixture()

	req := f.request()
	req.TenantID = uuid.Nil
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = f.request()
	req.CustomerID = uuid.Nil
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = f.request()
	req.StartTime = time.Time{}
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
