package reviews

import (
	"context"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Update(ctx context.Context, id int64, rating int, comment *string) error
	Delete(ctx context.Context, id int64) error
	ListByField(ctx context.Context, fieldID int64, limit, offset uint64) ([]*domain.Review, error)
	AggregateByField(ctx context.Context, fieldID int64) (float64, int, error)
}

// FieldRepository интерфейс репозитория площадок
type FieldRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
	UpdateRating(ctx context.Context, fieldID int64, rating float64, reviewCount int) error
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
