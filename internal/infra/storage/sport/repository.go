package sport

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	"github.com/ZHANGLudovic/Web-Project/pkg/dbmetrics"
	"github.com/ZHANGLudovic/Web-Project/pkg/psqlbuilder"
)

const sportsTable = "sports"

// List возвращает весь каталог видов спорта по алфавиту
func (r *Repository) List(ctx context.Context) ([]*domain.Sport, error) {
	query, args, err := psqlbuilder.Select("id", "name", "icon", "description", "created_at").
		From(sportsTable).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - select sports: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sports := make([]*domain.Sport, 0)

	for rows.Next() {
		var s domain.Sport
		err := rows.Scan(&s.ID, &s.Name, &s.Icon, &s.Description, &s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan sport: %v", ErrScanRow, err)
		}
		sports = append(sports, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrExecQuery, err)
	}

	return sports, nil
}

// Create добавляет вид спорта в каталог и возвращает его ID
func (r *Repository) Create(ctx context.Context, s *domain.Sport) (int64, error) {
	query, args, err := psqlbuilder.Insert(sportsTable).
		Columns("name", "icon", "description").
		Values(s.Name, s.Icon, s.Description).
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
			return 0, fmt.Errorf("%w: Create - sport %q", ErrDuplicateSport, s.Name)
		}
		return 0, fmt.Errorf("%w: Create - insert sport: %v", ErrExecQuery, err)
	}

	return id, nil
}

// Delete удаляет вид спорта из каталога
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete(sportsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - delete sport: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: Delete - sport %d", ErrSportNotFound, id)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
