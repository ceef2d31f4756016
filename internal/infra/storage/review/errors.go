package review

import "errors"

var (
	// ErrReviewNotFound - отзыв не найден
	ErrReviewNotFound = errors.New("review.repository: review not found")
	// ErrDuplicateReview - пользователь уже оставил отзыв на эту площадку
	ErrDuplicateReview = errors.New("review.repository: duplicate review")
	// ErrBuildQuery - ошибка построения SQL запроса
	ErrBuildQuery = errors.New("review.repository: failed to build query")
	// ErrExecQuery - ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("review.repository: failed to execute query")
	// ErrScanRow - ошибка сканирования результата запроса
	ErrScanRow = errors.New("review.repository: failed to scan row")
)
