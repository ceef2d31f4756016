package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	userRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/user"
)

// Service сервис для работы с пользователями
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register регистрирует нового пользователя.
// Пароль хранится только в виде bcrypt-хеша
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error) {
	if err := validateRegisterRequest(req); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, userRepo.ErrDuplicateUser) {
			s.logger.Warn("Register: user with email %q already exists", user.Email)
			return nil, ErrUserAlreadyExists
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: user %q registered with id=%d", user.Username, id)

	created, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Register: failed to read created user id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	return FromDomainUser(created), nil
}

// GetByID возвращает пользователя по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetByID: user id=%d not found", id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetByID: repository error for user id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return FromDomainUser(user), nil
}

// Update обновляет профиль. Пользователь меняет только свой профиль,
// администратор — любой
func (s *Service) Update(ctx context.Context, actor *domain.User, id int64, req *UpdateUserRequest) (*UserResponse, error) {
	if actor.ID != id && !actor.IsAdmin() {
		s.logger.Warn("Update: user %d cannot modify profile of user %d", actor.ID, id)
		return nil, ErrAccessDenied
	}

	if err := validateUpdateRequest(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.userRepo.Update(ctx, id, req.Username, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, userRepo.ErrUserNotFound):
			s.logger.Warn("Update: user id=%d not found", id)
			return nil, ErrUserNotFound
		case errors.Is(err, userRepo.ErrDuplicateUser):
			s.logger.Warn("Update: email or username already taken for user id=%d", id)
			return nil, ErrUserAlreadyExists
		default:
			s.logger.Error("Update: repository error for user id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: user id=%d updated", id)
	return FromDomainUser(updated), nil
}

func validateRegisterRequest(req *RegisterRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}

	username := strings.TrimSpace(req.Username)
	if len(username) < domain.MinUsernameLength || len(username) > domain.MaxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters",
			ErrInvalidInput, domain.MinUsernameLength, domain.MaxUsernameLength)
	}

	if len(req.Password) < domain.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters",
			ErrInvalidInput, domain.MinPasswordLength)
	}

	return nil
}

func validateUpdateRequest(req *UpdateUserRequest) error {
	if req.Username == nil && req.Email == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if len(username) < domain.MinUsernameLength || len(username) > domain.MaxUsernameLength {
			return fmt.Errorf("%w: username must be %d-%d characters",
				ErrInvalidInput, domain.MinUsernameLength, domain.MaxUsernameLength)
		}
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" || !strings.Contains(email, "@") {
			return fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
	}

	return nil
}
