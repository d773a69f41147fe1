package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL для нарушения уникального ограничения
const pgUniqueViolation = "23505"

const appointmentColumns = "id, tenant_id, customer_id, order_number, start_time, description, status, created_at, updated_at"

// Repository репозиторий для работы с записями на приём
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись вместе со снапшотом выбранных услуг
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"tenant_id",
			"customer_id",
			"order_number",
			"start_time",
			"description",
			"status",
		).
		Values(
			appt.ID,
			appt.TenantID,
			appt.CustomerID,
			appt.OrderNumber,
			appt.StartTime,
			appt.Description,
			appt.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, classifyExecError("Create - execute insert", err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	if err := r.insertServiceLines(ctx, executor, appt.ID, appt.Services); err != nil {
		return nil, err
	}

	return appt, nil
}

// GetByID получает запись тенанта по ID вместе со строками услуг
func (r *Repository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if err := r.loadServiceLines(ctx, executor, appt); err != nil {
		return nil, err
	}

	return appt, nil
}

// GetWithFilter получает записи тенанта с гибкой фильтрацией
// Поддерживает фильтрацию по клиенту, периоду и статусу
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns).
		From("appointments").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	// Фильтрация по клиенту (если указан)
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_time": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.
		OrderBy("start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appts, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}

	for _, appt := range appts {
		if err := r.loadServiceLines(ctx, executor, appt); err != nil {
			return nil, err
		}
	}

	return appts, nil
}

// Update обновляет запись и полностью заменяет снапшот услуг
func (r *Repository) Update(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("customer_id", appt.CustomerID).
		Set("order_number", appt.OrderNumber).
		Set("start_time", appt.StartTime).
		Set("description", appt.Description).
		Set("status", appt.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appt.ID, "tenant_id": appt.TenantID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, classifyExecError("Update - execute update", err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	// Строки услуг заменяются целиком, не сливаются
	if err := r.deleteServiceLines(ctx, executor, appt.ID); err != nil {
		return nil, err
	}
	if err := r.insertServiceLines(ctx, executor, appt.ID, appt.Services); err != nil {
		return nil, err
	}

	return appt, nil
}

// UpdateStatus обновляет статус записи тенанта
func (r *Repository) UpdateStatus(ctx context.Context, id, tenantID uuid.UUID, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete удаляет запись тенанта (строки услуг каскадируются по FK)
func (r *Repository) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// IsTimeSlotAvailable проверяет, свободен ли слот [start, start+duration) у тенанта
// Пересечение полуинтервалов: existing.start < candidateEnd AND existing.start + duration > candidateStart
// Запись, начинающаяся ровно в момент окончания другой, НЕ конфликтует
// Отменённые записи слот не занимают; excludeID исключает запись при переносе
func (r *Repository) IsTimeSlotAvailable(ctx context.Context, start time.Time, durationMinutes int, tenantID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	durationMinutes = domain.NormalizeDuration(durationMinutes)
	end := domain.SlotEnd(start, durationMinutes)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.Expr("start_time < ?", end)).
		Where(squirrel.Expr("start_time + (? * interval '1 minute') > ?", durationMinutes, start))

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsTimeSlotAvailable - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: IsTimeSlotAvailable - scan count: %v", ErrScanRow, err)
	}

	return count == 0, nil
}

// OrderNumberExists проверяет существование номера заказа во всей системе
// (уникальность глобальная, не per-tenant); excludeID исключает запись при обновлении
func (r *Repository) OrderNumberExists(ctx context.Context, orderNumber string, excludeID *uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"order_number": orderNumber})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: OrderNumberExists - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: OrderNumberExists - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// Вспомогательные методы

func (r *Repository) insertServiceLines(ctx context.Context, executor DBExecutor, appointmentID uuid.UUID, lines []domain.ServiceLine) error {
	if len(lines) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("appointment_services").
		Columns("appointment_id", "service_offering_id", "name", "category", "price_at_booking")

	for _, line := range lines {
		insertBuilder = insertBuilder.Values(appointmentID, line.ServiceID, line.Name, line.Category, line.PriceAtBooking)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertServiceLines - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertServiceLines - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) deleteServiceLines(ctx context.Context, executor DBExecutor, appointmentID uuid.UUID) error {
	query, args, err := psqlbuilder.Delete("appointment_services").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: deleteServiceLines - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: deleteServiceLines - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) loadServiceLines(ctx context.Context, executor DBExecutor, appt *domain.Appointment) error {
	query, args, err := psqlbuilder.Select("service_offering_id", "name", "category", "price_at_booking").
		From("appointment_services").
		Where(squirrel.Eq{"appointment_id": appt.ID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadServiceLines - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadServiceLines - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lines := make([]domain.ServiceLine, 0)
	for rows.Next() {
		var line domain.ServiceLine
		if err := rows.Scan(&line.ServiceID, &line.Name, &line.Category, &line.PriceAtBooking); err != nil {
			return fmt.Errorf("%w: loadServiceLines - scan row: %v", ErrScanRow, err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadServiceLines - rows error: %v", ErrScanRow, err)
	}

	appt.Services = lines
	return nil
}

func (r *Repository) scanAppointment(row *sql.Row) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.TenantID,
		&appt.CustomerID,
		&appt.OrderNumber,
		&appt.StartTime,
		&appt.Description,
		&appt.Status,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanAppointment - scan row: %v", ErrScanRow, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appts := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.TenantID,
			&appt.CustomerID,
			&appt.OrderNumber,
			&appt.StartTime,
			&appt.Description,
			&appt.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appts = append(appts, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appts, nil
}

// classifyExecError распознаёт нарушение уникального ограничения,
// чтобы вызывающий код мог отличить конкурентный дубликат от прочих ошибок
func classifyExecError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s: %v", ErrUniqueViolation, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
