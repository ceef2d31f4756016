package domain

import (
	"time"

	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

// Field represents a bookable sports field
// Для ядра бронирования поле — поставщик возможностей (рабочие часы, цена),
// а не изменяемая сущность: ядро его только читает
type Field struct {
	ID           int64
	Name         string
	Sport        string
	Address      string
	City         string
	Size         int
	OpenTime     types.TimeString
	CloseTime    types.TimeString
	PricePerHour float64
	Description  *string
	ImageURL     *string
	Rating       float64
	ReviewCount  int

	CreatedAt time.Time
}

// FieldsFilter фильтр для списка полей
type FieldsFilter struct {
	Sport *string // Фильтр по виду спорта (опционально)
	City  *string // Фильтр по городу (опционально)
}
