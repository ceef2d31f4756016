package domain

import (
	"time"

	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a field reservation in the system
// Одна строка на бронирование; занятые часовые слоты хранятся отдельно
// в occupied_slots и всегда ровно соответствуют интервалу [StartTime, EndTime)
type Reservation struct {
	ID              int64
	UserID          int64
	FieldID         int64
	ReservationDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	Status          ReservationStatus
	TotalPrice      float64
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies its slots
func (r *Reservation) IsActive() bool {
	return r.Status == StatusConfirmed
}

// IsOwnedBy returns true if the reservation belongs to the given user
func (r *Reservation) IsOwnedBy(userID int64) bool {
	return r.UserID == userID
}

// OccupiedSlot помечает один часовой слот поля занятым конкретным бронированием
// Инвариант системы: на (FieldID, ReservationDate, SlotLabel) существует
// не более одной живой записи; уникальный индекс в БД — финальный арбитр
type OccupiedSlot struct {
	ID              int64
	ReservationID   int64
	FieldID         int64
	ReservationDate time.Time
	SlotLabel       types.TimeString
}
