package get_available_slots

import (
	"context"
	"time"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

// SlotRepository интерфейс индекса занятых слотов
type SlotRepository interface {
	GetByFieldAndDate(ctx context.Context, fieldID int64, date time.Time) ([]types.TimeString, error)
}

// FieldRepository интерфейс репозитория площадок
type FieldRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
