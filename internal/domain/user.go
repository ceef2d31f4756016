package domain

import "time"

// UserRole represents the role of a user
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User represents a registered user
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	Role         UserRole

	CreatedAt time.Time
}

// IsAdmin returns true if the user has administrator privileges
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Review represents a user review of a field
// Один пользователь оставляет не более одного отзыва на поле
type Review struct {
	ID      int64
	FieldID int64
	UserID  int64
	Rating  int
	Comment *string

	// Денормализованное имя автора для выдачи списков
	Username string

	CreatedAt time.Time
}

// Sport represents an entry of the sport catalog
type Sport struct {
	ID          int64
	Name        string
	Icon        *string
	Description *string

	CreatedAt time.Time
}
