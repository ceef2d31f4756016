package create_field

import (
	"context"
	"errors"
	"net/http"

	"github.com/ZHANGLudovic/Web-Project/internal/api/handlers"
	"github.com/ZHANGLudovic/Web-Project/internal/api/middleware"
	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	"github.com/ZHANGLudovic/Web-Project/internal/service/fields"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgAccessDenied       = "операция доступна только администратору"
	msgFieldExists        = "площадка с таким именем уже существует"
)

type FieldsService interface {
	Create(ctx context.Context, user *domain.User, req *fields.CreateFieldRequest) (*fields.FieldResponse, error)
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

// Handle POST /api/v1/fields
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	var req fields.CreateFieldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /fields - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), user, &req)
	if err != nil {
		switch {
		case errors.Is(err, fields.ErrAccessDenied):
			h.logger.Warn("POST /fields - Access denied: user_id=%d", user.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, fields.ErrFieldAlreadyExists):
			handlers.RespondConflict(w, msgFieldExists)

		case errors.Is(err, fields.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /fields - Failed to create field: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /fields - Field created: field_id=%d, user_id=%d", result.ID, user.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
