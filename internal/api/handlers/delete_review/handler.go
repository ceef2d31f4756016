package delete_review

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
	msgInvalidReviewID = "некорректный идентификатор отзыва"
	msgReviewNotFound  = "отзыв не найден"
	msgAccessDenied    = "удалить отзыв может только его автор или администратор"
)

type ReviewsService interface {
	Delete(ctx context.Context, user *domain.User, reviewID int64) error
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

// Handle DELETE /api/v1/reviews/{id}
// После удаления отзыва рейтинг площадки пересчитывается
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

	if err := h.service.Delete(r.Context(), user, id); err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			handlers.RespondNotFound(w, msgReviewNotFound)

		case errors.Is(err, reviews.ErrAccessDenied):
			h.logger.Warn("DELETE /reviews/{id} - Access denied: review_id=%d, user_id=%d", id, user.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /reviews/{id} - Failed to delete review: review_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reviews/{id} - Review deleted: review_id=%d, user_id=%d", id, user.ID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
