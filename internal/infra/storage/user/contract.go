package user

import (
	"github.com/ZHANGLudovic/Web-Project/pkg/dbmetrics"
)

// Repository реализует доступ к таблице users
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создаёт новый репозиторий пользователей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}
