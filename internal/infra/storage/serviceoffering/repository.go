package serviceoffering

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения каталога услуг тенанта
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByIDsForTenant получает услуги тенанта по списку ID
// Услуги чужих тенантов и неизвестные ID молча выпадают из результата,
// вызывающий код сверяет длину с запрошенной
func (r *Repository) GetByIDsForTenant(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]*domain.ServiceOffering, error) {
	if len(ids) == 0 {
		return []*domain.ServiceOffering{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "business_id", "name", "category", "price", "is_active", "created_at", "updated_at",
	).
		From("service_offerings").
		Where(squirrel.Eq{"id": ids, "business_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDsForTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDsForTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	offerings := make([]*domain.ServiceOffering, 0, len(ids))
	for rows.Next() {
		var offering domain.ServiceOffering
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&offering.ID,
			&offering.BusinessID,
			&offering.Name,
			&offering.Category,
			&offering.Price,
			&offering.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByIDsForTenant - scan row: %v", ErrScanRow, err)
		}

		offering.CreatedAt = createdAt.Time
		offering.UpdatedAt = updatedAt.Time

		offerings = append(offerings, &offering)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDsForTenant - rows error: %v", ErrScanRow, err)
	}

	return offerings, nil
}
