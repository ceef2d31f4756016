package get_available_slots

import (
	"time"

	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

// Request модель запроса доступных слотов площадки на дату
type Request struct {
	FieldID int64     // ID площадки
	Date    time.Time // Дата (без времени)
}

// Response модель ответа со слотами площадки на дату
type Response struct {
	FieldID int64     // ID площадки
	Date    time.Time // Дата

	AllSlots       []types.TimeString // Все слоты рабочего дня
	ReservedSlots  []types.TimeString // Занятые слоты
	AvailableSlots []types.TimeString // Свободные слоты
}
