package update_review

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
	msgInvalidReviewID    = "некорректный идентификатор отзыва"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgReviewNotFound     = "отзыв не найден"
	msgAccessDenied       = "изменять можно только собственный отзыв"
)

type ReviewsService interface {
	Update(ctx context.Context, user *domain.User, reviewID int64, req *reviews.UpdateReviewRequest) (*reviews.ReviewResponse, error)
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

// Handle PUT /api/v1/reviews/{id}
// После изменения отзыва рейтинг площадки пересчитывается
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	var body reviews.UpdateReviewRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /reviews/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), user, id, &body)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			handlers.RespondNotFound(w, msgReviewNotFound)

		case errors.Is(err, reviews.ErrAccessDenied):
			h.logger.Warn("PUT /reviews/{id} - Access denied: review_id=%d, user_id=%d", id, user.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reviews.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /reviews/{id} - Failed to update review: review_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reviews/{id} - Review updated: review_id=%d, user_id=%d", id, user.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
