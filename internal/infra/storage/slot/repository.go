package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/ZHANGLudovic/Web-Project/pkg/dbmetrics"
	"github.com/ZHANGLudovic/Web-Project/pkg/psqlbuilder"
	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

// Код ошибки PostgreSQL для нарушения уникального ограничения
const pgUniqueViolation = "23505"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository индекс занятых слотов: durable-отображение
// (field_id, reservation_date, slot_label) -> reservation_id
// Запись идет только через координаторов бронирования и отмены
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр индекса занятых слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertBatch вставляет все слоты бронирования одним multi-row INSERT
// Пакет вставляется целиком или не вставляется вовсе: при занятости любого
// слота запрос падает с unique violation и возвращается ErrSlotTaken
func (r *Repository) InsertBatch(
	ctx context.Context,
	reservationID int64,
	fieldID int64,
	date time.Time,
	labels []types.TimeString,
) error {
	if len(labels) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("occupied_slots").
		Columns("reservation_id", "field_id", "reservation_date", "slot_label")

	for _, label := range labels {
		insertBuilder = insertBuilder.Values(reservationID, fieldID, date, label)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: InsertBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: InsertBatch: %v", ErrSlotTaken, err)
		}
		return fmt.Errorf("%w: InsertBatch - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetOccupied возвращает подмножество запрошенных меток, которые уже заняты
// Видит только зафиксированное состояние; внутри транзакции координатора
// читает согласованный с ней снимок
func (r *Repository) GetOccupied(
	ctx context.Context,
	fieldID int64,
	date time.Time,
	labels []types.TimeString,
) ([]types.TimeString, error) {
	if len(labels) == 0 {
		return []types.TimeString{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_label").
		From("occupied_slots").
		Where(squirrel.Eq{
			"field_id":         fieldID,
			"reservation_date": date,
			"slot_label":       labels,
		}).
		OrderBy("slot_label ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupied - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupied - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanLabels(rows)
}

// GetByFieldAndDate возвращает все занятые метки поля на дату
func (r *Repository) GetByFieldAndDate(
	ctx context.Context,
	fieldID int64,
	date time.Time,
) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_label").
		From("occupied_slots").
		Where(squirrel.Eq{
			"field_id":         fieldID,
			"reservation_date": date,
		}).
		OrderBy("slot_label ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByFieldAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFieldAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanLabels(rows)
}

// DeleteByReservation атомарно удаляет все слоты бронирования
// Возвращает количество освобожденных слотов
func (r *Repository) DeleteByReservation(ctx context.Context, reservationID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("occupied_slots").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByReservation - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByReservation - execute delete: %v", ErrExecQuery, err)
	}

	freed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByReservation - get rows affected: %v", ErrExecQuery, err)
	}

	return freed, nil
}

// scanLabels сканирует результаты запроса в слайс меток слотов
func scanLabels(rows *sql.Rows) ([]types.TimeString, error) {
	labels := make([]types.TimeString, 0)

	for rows.Next() {
		var label types.TimeString
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("%w: scanLabels - scan row: %v", ErrScanRow, err)
		}
		labels = append(labels, label)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanLabels - rows error: %v", ErrScanRow, err)
	}

	return labels, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}
