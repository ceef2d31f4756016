package fields

import (
	"fmt"
	"time"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

// CreateFieldRequest запрос на создание площадки
type CreateFieldRequest struct {
	Name         string  `json:"name"`
	Sport        string  `json:"sport"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Size         int     `json:"size"`
	OpenTime     string  `json:"openTime"`  // "08:00"
	CloseTime    string  `json:"closeTime"` // "22:00"
	PricePerHour float64 `json:"pricePerHour"`
	Description  *string `json:"description,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
}

// ToDomain конвертирует запрос в domain модель.
// Пустые рабочие часы заменяются часами по умолчанию
func (r *CreateFieldRequest) ToDomain() (*domain.Field, error) {
	openTime := types.TimeString(r.OpenTime)
	if openTime.IsZero() {
		openTime = types.TimeString(domain.DefaultFieldOpenTime)
	}
	closeTime := types.TimeString(r.CloseTime)
	if closeTime.IsZero() {
		closeTime = types.TimeString(domain.DefaultFieldCloseTime)
	}

	if err := openTime.Validate(); err != nil {
		return nil, fmt.Errorf("invalid openTime: %w", err)
	}
	if err := closeTime.Validate(); err != nil {
		return nil, fmt.Errorf("invalid closeTime: %w", err)
	}

	return &domain.Field{
		Name:         r.Name,
		Sport:        r.Sport,
		Address:      r.Address,
		City:         r.City,
		Size:         r.Size,
		OpenTime:     openTime,
		CloseTime:    closeTime,
		PricePerHour: r.PricePerHour,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
	}, nil
}

// FieldResponse ответ с данными площадки
type FieldResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Sport        string  `json:"sport"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Size         int     `json:"size"`
	OpenTime     string  `json:"openTime"`
	CloseTime    string  `json:"closeTime"`
	PricePerHour float64 `json:"pricePerHour"`
	Description  *string `json:"description,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	Rating       float64 `json:"rating"`
	ReviewCount  int     `json:"reviewCount"`

	CreatedAt time.Time `json:"createdAt"`
}

// FieldListResponse ответ со списком площадок
type FieldListResponse struct {
	Fields []FieldResponse `json:"fields"`
}

// FromDomainField конвертирует domain модель в DTO
func FromDomainField(f *domain.Field) *FieldResponse {
	if f == nil {
		return nil
	}

	return &FieldResponse{
		ID:           f.ID,
		Name:         f.Name,
		Sport:        f.Sport,
		Address:      f.Address,
		City:         f.City,
		Size:         f.Size,
		OpenTime:     f.OpenTime.String(),
		CloseTime:    f.CloseTime.String(),
		PricePerHour: f.PricePerHour,
		Description:  f.Description,
		ImageURL:     f.ImageURL,
		Rating:       f.Rating,
		ReviewCount:  f.ReviewCount,
		CreatedAt:    f.CreatedAt,
	}
}

// FromDomainFieldList конвертирует список domain моделей в DTO
func FromDomainFieldList(fields []*domain.Field) *FieldListResponse {
	resp := &FieldListResponse{
		Fields: make([]FieldResponse, 0, len(fields)),
	}

	for _, f := range fields {
		if converted := FromDomainField(f); converted != nil {
			resp.Fields = append(resp.Fields, *converted)
		}
	}

	return resp
}
