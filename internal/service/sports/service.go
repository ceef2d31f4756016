package sports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	sportRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/sport"
)

// SportRepository интерфейс репозитория каталога видов спорта
type SportRepository interface {
	List(ctx context.Context) ([]*domain.Sport, error)
	Create(ctx context.Context, s *domain.Sport) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CreateSportRequest запрос на добавление вида спорта
type CreateSportRequest struct {
	Name        string  `json:"name"`
	Icon        *string `json:"icon,omitempty"`
	Description *string `json:"description,omitempty"`
}

// SportResponse ответ с данными вида спорта
type SportResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Icon        *string `json:"icon,omitempty"`
	Description *string `json:"description,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// SportListResponse ответ со списком видов спорта
type SportListResponse struct {
	Sports []SportResponse `json:"sports"`
}

// Service сервис каталога видов спорта
type Service struct {
	sportRepo SportRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(sportRepo SportRepository, logger Logger) *Service {
	return &Service{
		sportRepo: sportRepo,
		logger:    logger,
	}
}

// List возвращает весь каталог видов спорта
func (s *Service) List(ctx context.Context) (*SportListResponse, error) {
	sports, err := s.sportRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &SportListResponse{
		Sports: make([]SportResponse, 0, len(sports)),
	}
	for _, sport := range sports {
		resp.Sports = append(resp.Sports, SportResponse{
			ID:          sport.ID,
			Name:        sport.Name,
			Icon:        sport.Icon,
			Description: sport.Description,
			CreatedAt:   sport.CreatedAt,
		})
	}

	return resp, nil
}

// Create добавляет вид спорта в каталог. Операция доступна только администратору
func (s *Service) Create(ctx context.Context, user *domain.User, req *CreateSportRequest) (*SportResponse, error) {
	if !user.IsAdmin() {
		s.logger.Warn("Create: user %d is not an admin", user.ID)
		return nil, ErrAccessDenied
	}

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	sport := &domain.Sport{
		Name:        req.Name,
		Icon:        req.Icon,
		Description: req.Description,
	}

	id, err := s.sportRepo.Create(ctx, sport)
	if err != nil {
		if errors.Is(err, sportRepo.ErrDuplicateSport) {
			s.logger.Warn("Create: sport %q already exists", req.Name)
			return nil, ErrSportAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: sport %q created with id=%d", req.Name, id)

	return &SportResponse{
		ID:          id,
		Name:        sport.Name,
		Icon:        sport.Icon,
		Description: sport.Description,
	}, nil
}

// Delete удаляет вид спорта из каталога. Операция доступна только администратору
func (s *Service) Delete(ctx context.Context, user *domain.User, id int64) error {
	if !user.IsAdmin() {
		s.logger.Warn("Delete: user %d is not an admin", user.ID)
		return ErrAccessDenied
	}

	if err := s.sportRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sportRepo.ErrSportNotFound) {
			s.logger.Warn("Delete: sport id=%d not found", id)
			return ErrSportNotFound
		}
		s.logger.Error("Delete: repository error for sport id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: sport id=%d deleted", id)
	return nil
}
