package create_reservation

import (
	"time"

	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя
	FieldID   int64            // ID площадки
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Начало интервала (например, "08:00")
	EndTime   types.TimeString // Конец интервала, не включается (например, "11:00")
	Notes     *string          // Дополнительные заметки (опционально)

	// Ожидаемая клиентом стоимость (опционально). Итоговую стоимость
	// сервер всегда считает сам по тарифу площадки, но отрицательное
	// значение отклоняется на валидации
	TotalPrice *float64
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	UserID          int64            // ID пользователя
	FieldID         int64            // ID площадки
	ReservationDate time.Time        // Дата бронирования
	StartTime       types.TimeString // Начало интервала
	EndTime         types.TimeString // Конец интервала
	Status          string           // Статус бронирования
	TotalPrice      float64          // Итоговая стоимость
	Notes           *string          // Заметки

	// Слоты, занятые этим бронированием
	SlotLabels []types.TimeString

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
