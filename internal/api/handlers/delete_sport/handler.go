package delete_sport

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ZHANGLudovic/Web-Project/internal/api/handlers"
	"github.com/ZHANGLudovic/Web-Project/internal/api/middleware"
	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	"github.com/ZHANGLudovic/Web-Project/internal/service/sports"
)

const (
	msgInvalidSportID = "некорректный идентификатор вида спорта"
	msgSportNotFound  = "вид спорта не найден"
	msgAccessDenied   = "операция доступна только администратору"
)

type SportsService interface {
	Delete(ctx context.Context, user *domain.User, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service SportsService
	logger  Logger
}

func NewHandler(service SportsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/sports/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidSportID)
		return
	}

	if err := h.service.Delete(r.Context(), user, id); err != nil {
		switch {
		case errors.Is(err, sports.ErrSportNotFound):
			handlers.RespondNotFound(w, msgSportNotFound)

		case errors.Is(err, sports.ErrAccessDenied):
			h.logger.Warn("DELETE /sports/{id} - Access denied: sport_id=%d, user_id=%d", id, user.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /sports/{id} - Failed to delete sport: sport_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /sports/{id} - Sport deleted: sport_id=%d", id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
