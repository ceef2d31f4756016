package review

import (
	"github.com/ZHANGLudovic/Web-Project/pkg/dbmetrics"
)

// Repository реализует доступ к таблице reviews
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создаёт новый репозиторий отзывов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}
