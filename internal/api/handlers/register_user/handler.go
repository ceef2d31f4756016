package register_user

import (
	"context"
	"errors"
	"net/http"

	"github.com/ZHANGLudovic/Web-Project/internal/api/handlers"
	"github.com/ZHANGLudovic/Web-Project/internal/service/users"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные регистрации"
	msgUserExists         = "пользователь с таким email уже существует"
)

type UsersService interface {
	Register(ctx context.Context, req *users.RegisterRequest) (*users.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service UsersService
	logger  Logger
}

func NewHandler(service UsersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/users/register
// Единственный маршрут без аутентификации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req users.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserAlreadyExists):
			h.logger.Warn("POST /users/register - User already exists: email=%s", req.Email)
			handlers.RespondConflict(w, msgUserExists)

		case errors.Is(err, users.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /users/register - Failed to register user: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users/register - User registered: user_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
