package field

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	"github.com/ZHANGLudovic/Web-Project/pkg/dbmetrics"
	"github.com/ZHANGLudovic/Web-Project/pkg/psqlbuilder"
)

const fieldsTable = "fields"

var fieldColumns = []string{
	"id", "name", "sport", "address", "city", "size",
	"open_time", "close_time", "price_per_hour",
	"description", "image_url", "rating", "review_count", "created_at",
}

// Create создаёт новую площадку и возвращает её ID
func (r *Repository) Create(ctx context.Context, f *domain.Field) (int64, error) {
	query, args, err := psqlbuilder.Insert(fieldsTable).
		Columns("name", "sport", "address", "city", "size",
			"open_time", "close_time", "price_per_hour", "description", "image_url").
		Values(f.Name, f.Sport, f.Address, f.City, f.Size,
			f.OpenTime, f.CloseTime, f.PricePerHour, f.Description, f.ImageURL).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Create - build query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: Create - field %q", ErrDuplicateField, f.Name)
		}
		return 0, fmt.Errorf("%w: Create - insert field: %v", ErrExecQuery, err)
	}

	return id, nil
}

// GetByID возвращает площадку по её идентификатору
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Field, error) {
	query, args, err := psqlbuilder.Select(fieldColumns...).
		From(fieldsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	row := executor.QueryRowContext(ctx, query, args...)

	field, err := scanField(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: GetByID - field %d", ErrFieldNotFound, id)
		}
		return nil, fmt.Errorf("%w: GetByID - scan field: %v", ErrScanRow, err)
	}

	return field, nil
}

// List возвращает площадки с учётом фильтра по виду спорта и городу
func (r *Repository) List(ctx context.Context, filter domain.FieldsFilter) ([]*domain.Field, error) {
	builder := psqlbuilder.Select(fieldColumns...).
		From(fieldsTable).
		OrderBy("id")

	if filter.Sport != nil {
		builder = builder.Where(sq.Eq{"sport": *filter.Sport})
	}
	if filter.City != nil {
		builder = builder.Where(sq.Eq{"city": *filter.City})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - select fields: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	fields := make([]*domain.Field, 0)

	for rows.Next() {
		field, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan field: %v", ErrScanRow, err)
		}
		fields = append(fields, field)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrExecQuery, err)
	}

	return fields, nil
}

// UpdateRating обновляет агрегированный рейтинг площадки.
// Вызывается внутри транзакции создания отзыва
func (r *Repository) UpdateRating(ctx context.Context, fieldID int64, rating float64, reviewCount int) error {
	query, args, err := psqlbuilder.Update(fieldsTable).
		Set("rating", rating).
		Set("review_count", reviewCount).
		Where(sq.Eq{"id": fieldID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateRating - build query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateRating - update field: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateRating - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: UpdateRating - field %d", ErrFieldNotFound, fieldID)
	}

	return nil
}

// Delete удаляет площадку. Связанные брони и слоты удаляются каскадно
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete(fieldsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - delete field: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: Delete - field %d", ErrFieldNotFound, id)
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanField(row rowScanner) (*domain.Field, error) {
	var field domain.Field

	err := row.Scan(
		&field.ID,
		&field.Name,
		&field.Sport,
		&field.Address,
		&field.City,
		&field.Size,
		&field.OpenTime,
		&field.CloseTime,
		&field.PricePerHour,
		&field.Description,
		&field.ImageURL,
		&field.Rating,
		&field.ReviewCount,
		&field.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &field, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
