package create_review

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ZHANGLudovic/Web-Project/internal/api/handlers"
	"github.com/ZHANGLudovic/Web-Project/internal/api/middleware"
	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	"github.com/ZHANGLudovic/Web-Project/internal/service/reviews"
)

const (
	msgInvalidFieldID     = "некорректный идентификатор площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgFieldNotFound      = "площадка не найдена"
	msgReviewExists       = "вы уже оставили отзыв на эту площадку"
)

// createReviewBody тело запроса: fieldId берётся из пути
type createReviewBody struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

type ReviewsService interface {
	Create(ctx context.Context, user *domain.User, req *reviews.CreateReviewRequest) (*reviews.ReviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service ReviewsService
	logger  Logger
}

func NewHandler(service ReviewsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/fields/{id}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	fieldID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || fieldID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	var body createReviewBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /fields/{id}/reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), user, &reviews.CreateReviewRequest{
		FieldID: fieldID,
		Rating:  body.Rating,
		Comment: body.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrFieldNotFound):
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, reviews.ErrReviewAlreadyExists):
			h.logger.Warn("POST /fields/{id}/reviews - Review exists: field_id=%d, user_id=%d", fieldID, user.ID)
			handlers.RespondConflict(w, msgReviewExists)

		case errors.Is(err, reviews.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /fields/{id}/reviews - Failed to create review: field_id=%d, error=%v", fieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /fields/{id}/reviews - Review created: review_id=%d, field_id=%d, user_id=%d",
		result.ID, fieldID, user.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
