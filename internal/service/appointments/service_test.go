package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	appt      *domain.Appointment
	appts     []*domain.Appointment
	err       error
	statusErr error
	deleteErr error

	gotFilter domain.AppointmentsFilter
	gotStatus domain.AppointmentStatus
}

func (r *fakeRepo) GetByID(context.Context, uuid.UUID, uuid.UUID) (*domain.Appointment, error) {
	return r.appt, r.err
}

func (r *fakeRepo) GetWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	r.gotFilter = filter
	return r.appts, r.err
}

func (r *fakeRepo) UpdateStatus(_ context.Context, _, _ uuid.UUID, status domain.AppointmentStatus) error {
	r.gotStatus = status
	return r.statusErr
}

func (r *fakeRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return r.deleteErr
}

func TestGetByID(t *testing.T) {
	repo := &fakeRepo{
		appt: &domain.Appointment{
			ID:          uuid.New(),
			CustomerID:  uuid.New(),
			OrderNumber: "ORD-17",
			StartTime:   time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
			Status:      domain.StatusScheduled,
		},
	}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), repo.appt.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, repo.appt.ID, resp.ID)
	assert.Equal(t, "ORD-17", resp.OrderNumber)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{err: appointmentRepo.ErrAppointmentNotFound}, nopLogger{})

	_, err := svc.GetByID(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetAllByTenant(t *testing.T) {
	tenantID := uuid.New()
	repo := &fakeRepo{
		appts: []*domain.Appointment{
			{ID: uuid.New(), Status: domain.StatusScheduled},
			{ID: uuid.New(), Status: domain.StatusCompleted},
		},
	}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetAllByTenant(context.Background(), tenantID)
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)
	assert.Equal(t, tenantID, repo.gotFilter.TenantID)
	assert.Nil(t, repo.gotFilter.CustomerID)
}

func TestGetByCustomer(t *testing.T) {
	customerID := uuid.New()
	repo := &fakeRepo{}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByCustomer(context.Background(), customerID, uuid.New())
	require.NoError(t, err)
	require.NotNil(t, repo.gotFilter.CustomerID)
	assert.Equal(t, customerID, *repo.gotFilter.CustomerID)
}

func TestGetByDateRange(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopLogger{})

	req := &models.GetByDateRangeRequest{
		TenantID:  uuid.New(),
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
	}

	_, err := svc.GetByDateRange(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, repo.gotFilter.StartDate)
	require.NotNil(t, repo.gotFilter.EndDate)
}

func TestGetByDateRange_EndBeforeStart(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	req := &models.GetByDateRangeRequest{
		TenantID:  uuid.New(),
		StartDate: time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := svc.GetByDateRange(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByStatus(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByStatus(context.Background(), "cancelled", uuid.New())
	require.NoError(t, err)
	require.NotNil(t, repo.gotFilter.Status)
	assert.Equal(t, domain.StatusCancelled, *repo.gotFilter.Status)
}

func TestGetByStatus_Invalid(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	_, err := svc.GetByStatus(context.Background(), "archived", uuid.New())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetStatus(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.SetStatus(context.Background(), uuid.New(), uuid.New(), "completed"))
	assert.Equal(t, domain.StatusCompleted, repo.gotStatus)
}

func TestSetStatus_InvalidStatus(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	err := svc.SetStatus(context.Background(), uuid.New(), uuid.New(), "archived")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetStatus_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{statusErr: appointmentRepo.ErrAppointmentNotFound}, nopLogger{})

	err := svc.SetStatus(context.Background(), uuid.New(), uuid.New(), "completed")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{deleteErr: appointmentRepo.ErrAppointmentNotFound}, nopLogger{})

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
