package create_reservation

import (
	"context"
	"time"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

// ReservationRepository интерфейс журнала бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// SlotRepository интерфейс индекса занятых слотов
type SlotRepository interface {
	GetOccupied(ctx context.Context, fieldID int64, date time.Time, labels []types.TimeString) ([]types.TimeString, error)
	InsertBatch(ctx context.Context, reservationID, fieldID int64, date time.Time, labels []types.TimeString) error
}

// FieldRepository интерфейс репозитория площадок
type FieldRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс счётчиков исходов бронирования
type Metrics interface {
	IncReservationCreated()
	IncSlotConflict()
	IncSerializationFailure()
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
