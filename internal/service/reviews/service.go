package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	fieldRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/field"
	reviewRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/review"
)

// Service сервис для работы с отзывами.
// Создание отзыва и пересчёт агрегатов площадки идут одной транзакцией,
// чтобы rating и review_count не расходились с таблицей отзывов
type Service struct {
	reviewRepo ReviewRepository
	fieldRepo  FieldRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	fieldRepo FieldRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo: reviewRepo,
		fieldRepo:  fieldRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Create создает отзыв и обновляет агрегированный рейтинг площадки
func (s *Service) Create(ctx context.Context, user *domain.User, req *CreateReviewRequest) (*ReviewResponse, error) {
	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	review := &domain.Review{
		FieldID: req.FieldID,
		UserID:  user.ID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Площадка должна существовать
		if _, err := s.fieldRepo.GetByID(txCtx, req.FieldID); err != nil {
			if errors.Is(err, fieldRepo.ErrFieldNotFound) {
				return ErrFieldNotFound
			}
			return fmt.Errorf("%w: Create - get field: %v", ErrInternal, err)
		}

		// 2. Пишем отзыв
		id, err := s.reviewRepo.Create(txCtx, review)
		if err != nil {
			if errors.Is(err, reviewRepo.ErrDuplicateReview) {
				return ErrReviewAlreadyExists
			}
			return fmt.Errorf("%w: Create - insert review: %v", ErrInternal, err)
		}
		review.ID = id

		// 3. Пересчитываем агрегаты по фактическому содержимому таблицы
		rating, count, err := s.reviewRepo.AggregateByField(txCtx, req.FieldID)
		if err != nil {
			return fmt.Errorf("%w: Create - aggregate reviews: %v", ErrInternal, err)
		}

		if err := s.fieldRepo.UpdateRating(txCtx, req.FieldID, rating, count); err != nil {
			return fmt.Errorf("%w: Create - update field rating: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrFieldNotFound) || errors.Is(err, ErrReviewAlreadyExists) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		s.logger.Error("Create: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: Create - transaction: %v", ErrInternal, err)
	}

	review.Username = user.Username
	s.logger.Info("Create: review id=%d created for field=%d by user=%d", review.ID, req.FieldID, user.ID)

	return FromDomainReview(review), nil
}

// Update изменяет отзыв и пересчитывает агрегаты площадки.
// Менять отзыв может только его автор
func (s *Service) Update(ctx context.Context, user *domain.User, reviewID int64, req *UpdateReviewRequest) (*ReviewResponse, error) {
	if err := validateUpdateRequest(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	var review *domain.Review

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Отзыв должен существовать и принадлежать автору
		existing, err := s.reviewRepo.GetByID(txCtx, reviewID)
		if err != nil {
			if errors.Is(err, reviewRepo.ErrReviewNotFound) {
				return ErrReviewNotFound
			}
			return fmt.Errorf("%w: Update - get review: %v", ErrInternal, err)
		}
		if existing.UserID != user.ID {
			return ErrAccessDenied
		}

		// 2. Обновляем отзыв
		if err := s.reviewRepo.Update(txCtx, reviewID, req.Rating, req.Comment); err != nil {
			return fmt.Errorf("%w: Update - update review: %v", ErrInternal, err)
		}

		// 3. Пересчитываем агрегаты по фактическому содержимому таблицы
		rating, count, err := s.reviewRepo.AggregateByField(txCtx, existing.FieldID)
		if err != nil {
			return fmt.Errorf("%w: Update - aggregate reviews: %v", ErrInternal, err)
		}
		if err := s.fieldRepo.UpdateRating(txCtx, existing.FieldID, rating, count); err != nil {
			return fmt.Errorf("%w: Update - update field rating: %v", ErrInternal, err)
		}

		existing.Rating = req.Rating
		existing.Comment = req.Comment
		review = existing
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) || errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		s.logger.Error("Update: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: Update - transaction: %v", ErrInternal, err)
	}

	review.Username = user.Username
	s.logger.Info("Update: review id=%d updated by user=%d", reviewID, user.ID)

	return FromDomainReview(review), nil
}

// Delete удаляет отзыв и пересчитывает агрегаты площадки.
// Удалить отзыв может его автор или администратор
func (s *Service) Delete(ctx context.Context, user *domain.User, reviewID int64) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Отзыв должен существовать
		existing, err := s.reviewRepo.GetByID(txCtx, reviewID)
		if err != nil {
			if errors.Is(err, reviewRepo.ErrReviewNotFound) {
				return ErrReviewNotFound
			}
			return fmt.Errorf("%w: Delete - get review: %v", ErrInternal, err)
		}
		if existing.UserID != user.ID && !user.IsAdmin() {
			return ErrAccessDenied
		}

		// 2. Удаляем отзыв
		if err := s.reviewRepo.Delete(txCtx, reviewID); err != nil {
			return fmt.Errorf("%w: Delete - delete review: %v", ErrInternal, err)
		}

		// 3. Пересчитываем агрегаты по фактическому содержимому таблицы
		rating, count, err := s.reviewRepo.AggregateByField(txCtx, existing.FieldID)
		if err != nil {
			return fmt.Errorf("%w: Delete - aggregate reviews: %v", ErrInternal, err)
		}
		if err := s.fieldRepo.UpdateRating(txCtx, existing.FieldID, rating, count); err != nil {
			return fmt.Errorf("%w: Delete - update field rating: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) || errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrInternal) {
			return err
		}
		s.logger.Error("Delete: transaction failed: %v", err)
		return fmt.Errorf("%w: Delete - transaction: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: review id=%d deleted by user=%d", reviewID, user.ID)
	return nil
}

// ListByField возвращает отзывы площадки с пагинацией
func (s *Service) ListByField(ctx context.Context, req *ListReviewsRequest) (*ReviewListResponse, error) {
	if req.FieldID <= 0 {
		return nil, fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}

	limit := req.Limit
	if limit == 0 {
		limit = domain.DefaultReviewsLimit
	}
	if limit > domain.MaxReviewsLimit {
		limit = domain.MaxReviewsLimit
	}

	field, err := s.fieldRepo.GetByID(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			s.logger.Warn("ListByField: field id=%d not found", req.FieldID)
			return nil, ErrFieldNotFound
		}
		s.logger.Error("ListByField: failed to get field id=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: ListByField - get field: %v", ErrInternal, err)
	}

	reviews, err := s.reviewRepo.ListByField(ctx, req.FieldID, limit, req.Offset)
	if err != nil {
		s.logger.Error("ListByField: repository error for field=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: ListByField - repository error: %v", ErrInternal, err)
	}

	resp := &ReviewListResponse{
		Reviews:     make([]ReviewResponse, 0, len(reviews)),
		Rating:      field.Rating,
		ReviewCount: field.ReviewCount,
	}
	for _, r := range reviews {
		if converted := FromDomainReview(r); converted != nil {
			resp.Reviews = append(resp.Reviews, *converted)
		}
	}

	return resp, nil
}

func validateCreateRequest(req *CreateReviewRequest) error {
	if req.FieldID <= 0 {
		return fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}
	return validateRatingAndComment(req.Rating, req.Comment)
}

func validateUpdateRequest(req *UpdateReviewRequest) error {
	return validateRatingAndComment(req.Rating, req.Comment)
}

func validateRatingAndComment(rating int, comment *string) error {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d",
			ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if comment != nil && len(*comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment is too long", ErrInvalidInput)
	}
	return nil
}
