package field

import (
	"github.com/ZHANGLudovic/Web-Project/pkg/dbmetrics"
)

// Repository реализует доступ к таблице fields
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создаёт новый репозиторий площадок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}
