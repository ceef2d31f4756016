package fields

import (
	"context"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
)

// FieldRepository интерфейс репозитория площадок
type FieldRepository interface {
	Create(ctx context.Context, f *domain.Field) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
	List(ctx context.Context, filter domain.FieldsFilter) ([]*domain.Field, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
