package delete_field

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ZHANGLudovic/Web-Project/internal/api/handlers"
	"github.com/ZHANGLudovic/Web-Project/internal/api/middleware"
	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	"github.com/ZHANGLudovic/Web-Project/internal/service/fields"
)

const (
	msgInvalidFieldID = "некорректный идентификатор площадки"
	msgFieldNotFound  = "площадка не найдена"
	msgAccessDenied   = "операция доступна только администратору"
)

type FieldsService interface {
	Delete(ctx context.Context, user *domain.User, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service FieldsService
	logger  Logger
}

func NewHandler(service FieldsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/fields/{id}
// Каскадно удаляет бронирования и занятые слоты площадки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	if err := h.service.Delete(r.Context(), user, id); err != nil {
		switch {
		case errors.Is(err, fields.ErrFieldNotFound):
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, fields.ErrAccessDenied):
			h.logger.Warn("DELETE /fields/{id} - Access denied: field_id=%d, user_id=%d", id, user.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /fields/{id} - Failed to delete field: field_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /fields/{id} - Field deleted: field_id=%d, user_id=%d", id, user.ID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
