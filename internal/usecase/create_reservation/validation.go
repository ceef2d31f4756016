package create_reservation

import (
	"fmt"
	"time"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.FieldID <= 0 {
		return fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if req.TotalPrice != nil && *req.TotalPrice < 0 {
		return fmt.Errorf("%w: totalPrice must not be negative", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом.
// Сравниваются календарные даты, каждая в своем поясе: дата запроса
// приходит в UTC, а сервер может жить в другом поясе, и сравнение
// моментов времени отбраковывало бы сегодняшний день
func validateDate(date, now time.Time) error {
	if date.Format(domain.DateFormat) < now.Format(domain.DateFormat) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	return nil
}
