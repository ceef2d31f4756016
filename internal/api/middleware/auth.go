package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/ZHANGLudovic/Web-Project/internal/api/handlers"
	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	userRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/user"
)

type contextKey string

const userContextKey contextKey = "auth_user"

const (
	// HeaderUserID несёт ID аутентифицированного пользователя.
	// Аутентификацию выполняет внешний шлюз, сервис доверяет заголовку
	HeaderUserID = "X-User-ID"

	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный заголовок X-User-ID"
	msgUserNotFound  = "пользователь не найден"
)

// UserProvider загружает пользователя по ID
type UserProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет заголовок X-User-ID, загружает пользователя
// и кладёт его в контекст запроса
func Auth(users UserProvider, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawID := r.Header.Get(HeaderUserID)
			if rawID == "" {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			userID, err := strconv.ParseInt(rawID, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("Auth: invalid %s header: %q", HeaderUserID, rawID)
				handlers.RespondUnauthorized(w, msgInvalidUserID)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, userRepo.ErrUserNotFound) {
					logger.Warn("Auth: unknown user id=%d", userID)
					handlers.RespondUnauthorized(w, msgUserNotFound)
					return
				}
				logger.Error("Auth: failed to load user id=%d: %v", userID, err)
				handlers.RespondInternalError(w)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext возвращает аутентифицированного пользователя из контекста
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}
