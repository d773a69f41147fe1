package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

const invoiceColumns = `id, tenant_id, appointment_id, customer_id, invoice_number, issued_at,
	customer_name_snapshot, customer_email_snapshot,
	business_name_snapshot, business_address_snapshot, business_logo_snapshot,
	order_number_snapshot, appointment_date_snapshot,
	subtotal, discount, tax, total, status, created_at, updated_at`

// Repository репозиторий для работы со счетами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория счетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает счёт вместе со строками
// Нарушение уникальности invoice_number возвращается как ErrUniqueViolation,
// чтобы вызывающий код мог повторить попытку со следующим номером
func (r *Repository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invoices").
		Columns(
			"id",
			"tenant_id",
			"appointment_id",
			"customer_id",
			"invoice_number",
			"issued_at",
			"customer_name_snapshot",
			"customer_email_snapshot",
			"business_name_snapshot",
			"business_address_snapshot",
			"business_logo_snapshot",
			"order_number_snapshot",
			"appointment_date_snapshot",
			"subtotal",
			"discount",
			"tax",
			"total",
			"status",
		).
		Values(
			inv.ID,
			inv.TenantID,
			inv.AppointmentID,
			inv.CustomerID,
			inv.InvoiceNumber,
			inv.IssuedAt,
			inv.CustomerNameSnapshot,
			inv.CustomerEmailSnapshot,
			inv.BusinessNameSnapshot,
			inv.BusinessAddressSnapshot,
			inv.BusinessLogoSnapshot,
			inv.OrderNumberSnapshot,
			inv.AppointmentDateSnapshot,
			inv.Subtotal,
			inv.Discount,
			inv.Tax,
			inv.Total,
			inv.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrUniqueViolation, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	inv.CreatedAt = createdAt.Time
	inv.UpdatedAt = updatedAt.Time

	if err := r.insertLines(ctx, executor, inv.ID, inv.Lines); err != nil {
		return nil, err
	}

	return inv, nil
}

// GetByID получает счёт тенанта по ID вместе со строками
func (r *Repository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(invoiceColumns).
		From("invoices").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	inv, err := r.scanInvoice(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if err := r.loadLines(ctx, executor, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// GetAllByTenant получает все счета тенанта, новые первыми
func (r *Repository) GetAllByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(invoiceColumns).
		From("invoices").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	invoices, err := r.scanInvoices(rows)
	if err != nil {
		return nil, err
	}

	for _, inv := range invoices {
		if err := r.loadLines(ctx, executor, inv); err != nil {
			return nil, err
		}
	}

	return invoices, nil
}

// GetByAppointmentID получает счёт, выставленный по конкретной записи
// Используется для идемпотентности повторного запроса на выставление счёта
func (r *Repository) GetByAppointmentID(ctx context.Context, appointmentID, tenantID uuid.UUID) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(invoiceColumns).
		From("invoices").
		Where(squirrel.Eq{"appointment_id": appointmentID, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - build select query: %v", ErrBuildQuery, err)
	}

	inv, err := r.scanInvoice(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if err := r.loadLines(ctx, executor, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// GetMaxSequenceForYear возвращает максимальный выданный порядковый номер счёта
// тенанта за год (0, если счетов за год нет)
// Сканируются только номера с префиксом INV-{year}-, чужие и нечисловые хвосты дают 0
func (r *Repository) GetMaxSequenceForYear(ctx context.Context, tenantID uuid.UUID, year int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	prefix := domain.InvoiceNumberPrefix(year)

	query, args, err := psqlbuilder.Select("invoice_number").
		From("invoices").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Like{"invoice_number": prefix + "%"}).
		OrderBy("invoice_number DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: GetMaxSequenceForYear - build select query: %v", ErrBuildQuery, err)
	}

	var invoiceNumber string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&invoiceNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GetMaxSequenceForYear - scan row: %v", ErrScanRow, err)
	}

	return domain.ParseInvoiceSequence(invoiceNumber, year), nil
}

// Вспомогательные методы

func (r *Repository) insertLines(ctx context.Context, executor DBExecutor, invoiceID uuid.UUID, lines []domain.InvoiceLine) error {
	if len(lines) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("invoice_lines").
		Columns("id", "invoice_id", "name", "category", "qty", "unit_price", "line_total")

	for _, line := range lines {
		insertBuilder = insertBuilder.Values(line.ID, invoiceID, line.Name, line.Category, line.Qty, line.UnitPrice, line.LineTotal)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertLines - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertLines - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) loadLines(ctx context.Context, executor DBExecutor, inv *domain.Invoice) error {
	query, args, err := psqlbuilder.Select("id", "invoice_id", "name", "category", "qty", "unit_price", "line_total").
		From("invoice_lines").
		Where(squirrel.Eq{"invoice_id": inv.ID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadLines - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadLines - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lines := make([]domain.InvoiceLine, 0)
	for rows.Next() {
		var line domain.InvoiceLine
		if err := rows.Scan(&line.ID, &line.InvoiceID, &line.Name, &line.Category, &line.Qty, &line.UnitPrice, &line.LineTotal); err != nil {
			return fmt.Errorf("%w: loadLines - scan row: %v", ErrScanRow, err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadLines - rows error: %v", ErrScanRow, err)
	}

	inv.Lines = lines
	return nil
}

func (r *Repository) scanInvoice(row *sql.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&inv.ID,
		&inv.TenantID,
		&inv.AppointmentID,
		&inv.CustomerID,
		&inv.InvoiceNumber,
		&inv.IssuedAt,
		&inv.CustomerNameSnapshot,
		&inv.CustomerEmailSnapshot,
		&inv.BusinessNameSnapshot,
		&inv.BusinessAddressSnapshot,
		&inv.BusinessLogoSnapshot,
		&inv.OrderNumberSnapshot,
		&inv.AppointmentDateSnapshot,
		&inv.Subtotal,
		&inv.Discount,
		&inv.Tax,
		&inv.Total,
		&inv.Status,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanInvoice - scan row: %v", ErrScanRow, err)
	}

	inv.CreatedAt = createdAt.Time
	inv.UpdatedAt = updatedAt.Time

	return &inv, nil
}

func (r *Repository) scanInvoices(rows *sql.Rows) ([]*domain.Invoice, error) {
	invoices := make([]*domain.Invoice, 0)

	for rows.Next() {
		var inv domain.Invoice
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&inv.ID,
			&inv.TenantID,
			&inv.AppointmentID,
			&inv.CustomerID,
			&inv.InvoiceNumber,
			&inv.IssuedAt,
			&inv.CustomerNameSnapshot,
			&inv.CustomerEmailSnapshot,
			&inv.BusinessNameSnapshot,
			&inv.BusinessAddressSnapshot,
			&inv.BusinessLogoSnapshot,
			&inv.OrderNumberSnapshot,
			&inv.AppointmentDateSnapshot,
			&inv.Subtotal,
			&inv.Discount,
			&inv.Tax,
			&inv.Total,
			&inv.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanInvoices - scan row: %v", ErrScanRow, err)
		}

		inv.CreatedAt = createdAt.Time
		inv.UpdatedAt = updatedAt.Time

		invoices = append(invoices, &inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanInvoices - rows error: %v", ErrScanRow, err)
	}

	return invoices, nil
}
