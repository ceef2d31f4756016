package get_field

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ZHANGLudovic/Web-Project/internal/api/handlers"
	"github.com/ZHANGLudovic/Web-Project/internal/service/fields"
)

const (
	msgInvalidFieldID = "некорректный идентификатор площадки"
	msgFieldNotFound  = "площадка не найдена"
)

type FieldsService interface {
	GetByID(ctx context.Context, id int64) (*fields.FieldResponse, error)
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

// Handle GET /api/v1/fields/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, fields.ErrFieldNotFound) {
			handlers.RespondNotFound(w, msgFieldNotFound)
			return
		}
		h.logger.Error("GET /fields/{id} - Failed to fetch field: field_id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
