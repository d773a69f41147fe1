package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с профилями бизнесов (тенантов)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория бизнесов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает профиль бизнеса по ID тенанта
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "name", "email", "phone", "address", "logo_url",
		"country_code", "default_slot_minutes",
		"work_day_start", "work_day_end",
		"open_mon", "open_tue", "open_wed", "open_thu", "open_fri", "open_sat", "open_sun",
		"enable_invoices", "created_at", "updated_at",
	).
		From("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var biz domain.Business
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&biz.ID,
		&biz.Name,
		&biz.Email,
		&biz.Phone,
		&biz.Address,
		&biz.LogoURL,
		&biz.CountryCode,
		&biz.DefaultSlotMinutes,
		&biz.WorkDayStart,
		&biz.WorkDayEnd,
		&biz.OpenMon,
		&biz.OpenTue,
		&biz.OpenWed,
		&biz.OpenThu,
		&biz.OpenFri,
		&biz.OpenSat,
		&biz.OpenSun,
		&biz.EnableInvoices,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}

	biz.CreatedAt = createdAt.Time
	biz.UpdatedAt = updatedAt.Time

	return &biz, nil
}
