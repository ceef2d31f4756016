package create_reservation

import (
	"time"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	createReservation "github.com/ZHANGLudovic/Web-Project/internal/usecase/create_reservation"
	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	FieldID         int64    `json:"fieldId"`
	ReservationDate string   `json:"reservationDate"` // "2025-10-15"
	StartTime       string   `json:"startTime"`       // "08:00"
	EndTime         string   `json:"endTime"`         // "11:00"
	TotalPrice      *float64 `json:"totalPrice,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64    `json:"id"`
	UserID          int64    `json:"userId"`
	FieldID         int64    `json:"fieldId"`
	ReservationDate string   `json:"reservationDate"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	Status          string   `json:"status"`
	TotalPrice      float64  `json:"totalPrice"`
	SlotLabels      []string `json:"slotLabels"`
	Notes           *string  `json:"notes,omitempty"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// ConflictResponse HTTP ответ при занятых слотах: несёт точный список
// конфликтующих меток
type ConflictResponse struct {
	Message          string   `json:"message"`
	ConflictingSlots []string `json:"conflictingSlots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.ReservationDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:     userID,
		FieldID:    r.FieldID,
		Date:       date,
		StartTime:  startTime,
		EndTime:    endTime,
		TotalPrice: r.TotalPrice,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		FieldID:         resp.FieldID,
		ReservationDate: resp.ReservationDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		Status:          resp.Status,
		TotalPrice:      resp.TotalPrice,
		SlotLabels:      labelsToStrings(resp.SlotLabels),
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}

func labelsToStrings(labels []types.TimeString) []string {
	result := make([]string, 0, len(labels))
	for _, label := range labels {
		result = append(result, label.String())
	}
	return result
}
