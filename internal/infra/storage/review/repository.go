package review

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

const reviewsTable = "reviews"

// Create создаёт новый отзыв и возвращает его ID.
// Ограничение UNIQUE(field_id, user_id) не позволяет оставить второй отзыв
func (r *Repository) Create(ctx context.Context, review *domain.Review) (int64, error) {
	query, args, err := psqlbuilder.Insert(reviewsTable).
		Columns("field_id", "user_id", "rating", "comment").
		Values(review.FieldID, review.UserID, review.Rating, review.Comment).
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
			return 0, fmt.Errorf("%w: Create - field %d, user %d", ErrDuplicateReview, review.FieldID, review.UserID)
		}
		return 0, fmt.Errorf("%w: Create - insert review: %v", ErrExecQuery, err)
	}

	return id, nil
}

// GetByID возвращает отзыв по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	query, args, err := psqlbuilder.Select(
		"id", "field_id", "user_id", "rating", "comment", "created_at",
	).
		From(reviewsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	var review domain.Review
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&review.ID,
		&review.FieldID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: GetByID - id=%d", ErrReviewNotFound, id)
		}
		return nil, fmt.Errorf("%w: GetByID - scan review: %v", ErrScanRow, err)
	}

	return &review, nil
}

// Update изменяет рейтинг и комментарий отзыва
func (r *Repository) Update(ctx context.Context, id int64, rating int, comment *string) error {
	query, args, err := psqlbuilder.Update(reviewsTable).
		Set("rating", rating).
		Set("comment", comment).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - update review: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: Update - id=%d", ErrReviewNotFound, id)
	}

	return nil
}

// Delete удаляет отзыв
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete(reviewsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - delete review: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: Delete - id=%d", ErrReviewNotFound, id)
	}

	return nil
}

// ListByField возвращает отзывы площадки с именами авторов, новые первыми
func (r *Repository) ListByField(ctx context.Context, fieldID int64, limit, offset uint64) ([]*domain.Review, error) {
	query, args, err := psqlbuilder.Select(
		"r.id", "r.field_id", "r.user_id", "r.rating", "r.comment",
		"u.username", "r.created_at",
	).
		From(reviewsTable+" r").
		Join("users u ON u.id = r.user_id").
		Where(sq.Eq{"r.field_id": fieldID}).
		OrderBy("r.created_at DESC", "r.id DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByField - build query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByField - select reviews: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)

	for rows.Next() {
		var review domain.Review
		err := rows.Scan(
			&review.ID,
			&review.FieldID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.Username,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByField - scan review: %v", ErrScanRow, err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByField - iterate rows: %v", ErrExecQuery, err)
	}

	return reviews, nil
}

// AggregateByField возвращает средний рейтинг и число отзывов площадки.
// Используется внутри транзакции создания отзыва для обновления агрегатов
func (r *Repository) AggregateByField(ctx context.Context, fieldID int64) (float64, int, error) {
	query, args, err := psqlbuilder.Select(
		"COALESCE(AVG(rating), 0)", "COUNT(*)",
	).
		From(reviewsTable).
		Where(sq.Eq{"field_id": fieldID}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: AggregateByField - build query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	var (
		rating float64
		count  int
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rating, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: AggregateByField - scan aggregate: %v", ErrScanRow, err)
	}

	return rating, count, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
