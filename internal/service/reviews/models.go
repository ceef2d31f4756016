package reviews

import (
	"time"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
)

// CreateReviewRequest запрос на создание отзыва
type CreateReviewRequest struct {
	FieldID int64   `json:"fieldId"`
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

// UpdateReviewRequest запрос на изменение отзыва
type UpdateReviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

// ListReviewsRequest запрос на список отзывов площадки
type ListReviewsRequest struct {
	FieldID int64  `json:"fieldId"`
	Limit   uint64 `json:"limit"`
	Offset  uint64 `json:"offset"`
}

// ReviewResponse ответ с данными отзыва
type ReviewResponse struct {
	ID       int64   `json:"id"`
	FieldID  int64   `json:"fieldId"`
	UserID   int64   `json:"userId"`
	Username string  `json:"username"`
	Rating   int     `json:"rating"`
	Comment  *string `json:"comment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ReviewListResponse ответ со списком отзывов и актуальными агрегатами площадки
type ReviewListResponse struct {
	Reviews     []ReviewResponse `json:"reviews"`
	Rating      float64          `json:"rating"`
	ReviewCount int              `json:"reviewCount"`
}

// FromDomainReview конвертирует domain модель в DTO
func FromDomainReview(r *domain.Review) *ReviewResponse {
	if r == nil {
		return nil
	}

	return &ReviewResponse{
		ID:        r.ID,
		FieldID:   r.FieldID,
		UserID:    r.UserID,
		Username:  r.Username,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
