package cancel_reservation

import (
	"context"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
)

// ReservationRepository интерфейс журнала бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс индекса занятых слотов
type SlotRepository interface {
	DeleteByReservation(ctx context.Context, reservationID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс счётчиков исходов отмены
type Metrics interface {
	IncReservationCancelled()
}
