package sport

import (
	"github.com/ZHANGLudovic/Web-Project/pkg/dbmetrics"
)

// Repository реализует доступ к таблице sports
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создаёт новый репозиторий каталога видов спорта
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}
