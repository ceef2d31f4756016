package fields

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	fieldRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/field"
)

// Service сервис для работы с каталогом площадок
type Service struct {
	fieldRepo FieldRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(fieldRepo FieldRepository, logger Logger) *Service {
	return &Service{
		fieldRepo: fieldRepo,
		logger:    logger,
	}
}

// List возвращает площадки с фильтром по виду спорта и городу
func (s *Service) List(ctx context.Context, filter domain.FieldsFilter) (*FieldListResponse, error) {
	fields, err := s.fieldRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return FromDomainFieldList(fields), nil
}

// GetByID возвращает площадку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*FieldResponse, error) {
	field, err := s.fieldRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			s.logger.Warn("GetByID: field id=%d not found", id)
			return nil, ErrFieldNotFound
		}
		s.logger.Error("GetByID: repository error for field id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return FromDomainField(field), nil
}

// Create создает новую площадку. Операция доступна только администратору
func (s *Service) Create(ctx context.Context, user *domain.User, req *CreateFieldRequest) (*FieldResponse, error) {
	if !user.IsAdmin() {
		s.logger.Warn("Create: user %d is not an admin", user.ID)
		return nil, ErrAccessDenied
	}

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	field, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("Create: invalid working hours: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id, err := s.fieldRepo.Create(ctx, field)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrDuplicateField) {
			s.logger.Warn("Create: field %q already exists", req.Name)
			return nil, ErrFieldAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: field %q created with id=%d", field.Name, id)

	created, err := s.fieldRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Create: failed to read created field id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	return FromDomainField(created), nil
}

// Delete удаляет площадку вместе с её бронированиями и слотами.
// Операция доступна только администратору
func (s *Service) Delete(ctx context.Context, user *domain.User, id int64) error {
	if !user.IsAdmin() {
		s.logger.Warn("Delete: user %d is not an admin", user.ID)
		return ErrAccessDenied
	}

	if err := s.fieldRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			s.logger.Warn("Delete: field id=%d not found", id)
			return ErrFieldNotFound
		}
		s.logger.Error("Delete: repository error for field id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: field id=%d deleted", id)
	return nil
}

func validateCreateRequest(req *CreateFieldRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Sport == "" {
		return fmt.Errorf("%w: sport is required", ErrInvalidInput)
	}
	if req.City == "" {
		return fmt.Errorf("%w: city is required", ErrInvalidInput)
	}
	if req.PricePerHour < 0 {
		return fmt.Errorf("%w: pricePerHour must not be negative", ErrInvalidInput)
	}
	return nil
}
