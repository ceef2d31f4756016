package create_sport

import (
	"context"
	"errors"
	"net/http"

	"github.com/ZHANGLudovic/Web-Project/internal/api/handlers"
	"github.com/ZHANGLudovic/Web-Project/internal/api/middleware"
	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	"github.com/ZHANGLudovic/Web-Project/internal/service/sports"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgAccessDenied       = "операция доступна только администратору"
	msgSportExists        = "вид спорта уже есть в каталоге"
)

type SportsService interface {
	Create(ctx context.Context, user *domain.User, req *sports.CreateSportRequest) (*sports.SportResponse, error)
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

// Handle POST /api/v1/sports
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	var req sports.CreateSportRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sports - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), user, &req)
	if err != nil {
		switch {
		case errors.Is(err, sports.ErrAccessDenied):
			h.logger.Warn("POST /sports - Access denied: user_id=%d", user.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, sports.ErrSportAlreadyExists):
			handlers.RespondConflict(w, msgSportExists)

		case errors.Is(err, sports.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /sports - Failed to create sport: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sports - Sport created: sport_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
