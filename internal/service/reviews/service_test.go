package reviews

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	reviewRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/review"
	"github.com/ZHANGLudovic/Web-Project/pkg/ptr"
)

// Фейки зависимостей сервиса

type fakeReviewRepo struct {
	reviews map[int64]*domain.Review
	nextID  int64

	// Агрегат, который вернёт AggregateByField
	aggRating float64
	aggCount  int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[int64]*domain.Review), nextID: 1}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *domain.Review) (int64, error) {
	stored := *review
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.reviews[stored.ID] = &stored
	f.nextID++
	return stored.ID, nil
}

func (f *fakeReviewRepo) GetByID(_ context.Context, id int64) (*domain.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, fmt.Errorf("%w: GetByID - id=%d", reviewRepo.ErrReviewNotFound, id)
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, id int64, rating int, comment *string) error {
	r, ok := f.reviews[id]
	if !ok {
		return fmt.Errorf("%w: Update - id=%d", reviewRepo.ErrReviewNotFound, id)
	}
	r.Rating = rating
	r.Comment = comment
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.reviews[id]; !ok {
		return fmt.Errorf("%w: Delete - id=%d", reviewRepo.ErrReviewNotFound, id)
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) ListByField(_ context.Context, fieldID int64, _, _ uint64) ([]*domain.Review, error) {
	result := make([]*domain.Review, 0)
	for _, r := range f.reviews {
		if r.FieldID == fieldID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReviewRepo) AggregateByField(_ context.Context, _ int64) (float64, int, error) {
	return f.aggRating, f.aggCount, nil
}

type ratingUpdate struct {
	fieldID int64
	rating  float64
	count   int
}

type fakeFieldRepo struct {
	field   *domain.Field
	updates []ratingUpdate
}

func (f *fakeFieldRepo) GetByID(_ context.Context, _ int64) (*domain.Field, error) {
	return f.field, nil
}

func (f *fakeFieldRepo) UpdateRating(_ context.Context, fieldID int64, rating float64, count int) error {
	f.updates = append(f.updates, ratingUpdate{fieldID: fieldID, rating: rating, count: count})
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type testEnv struct {
	svc     *Service
	reviews *fakeReviewRepo
	fields  *fakeFieldRepo
}

func newTestEnv() *testEnv {
	env := &testEnv{
		reviews: newFakeReviewRepo(),
		fields:  &fakeFieldRepo{field: &domain.Field{ID: 1, Name: "Центральный стадион"}},
	}
	env.svc = NewService(env.reviews, env.fields, fakeTxManager{}, nopLogger{})
	return env
}

func seedReview(env *testEnv, userID int64, rating int) int64 {
	id, _ := env.reviews.Create(context.Background(), &domain.Review{
		FieldID: 1,
		UserID:  userID,
		Rating:  rating,
	})
	return id
}

func TestUpdate(t *testing.T) {
	owner := &domain.User{ID: 10, Username: "ivan", Role: domain.RoleUser}

	t.Run("автор меняет свой отзыв и агрегаты пересчитываются", func(t *testing.T) {
		env := newTestEnv()
		id := seedReview(env, owner.ID, 2)
		env.reviews.aggRating = 5.0
		env.reviews.aggCount = 1

		resp, err := env.svc.Update(context.Background(), owner, id, &UpdateReviewRequest{
			Rating:  5,
			Comment: ptr.Ptr("отличное покрытие"),
		})
		require.NoError(t, err)

		assert.Equal(t, 5, resp.Rating)
		assert.Equal(t, 5, env.reviews.reviews[id].Rating)

		require.Len(t, env.fields.updates, 1)
		assert.Equal(t, ratingUpdate{fieldID: 1, rating: 5.0, count: 1}, env.fields.updates[0])
	})

	t.Run("чужой отзыв менять нельзя", func(t *testing.T) {
		env := newTestEnv()
		id := seedReview(env, 99, 2)

		_, err := env.svc.Update(context.Background(), owner, id, &UpdateReviewRequest{Rating: 5})
		assert.ErrorIs(t, err, ErrAccessDenied)

		// Отзыв и агрегаты не тронуты
		assert.Equal(t, 2, env.reviews.reviews[id].Rating)
		assert.Empty(t, env.fields.updates)
	})

	t.Run("администратору чужой отзыв тоже недоступен", func(t *testing.T) {
		env := newTestEnv()
		id := seedReview(env, 99, 2)
		admin := &domain.User{ID: 1, Role: domain.RoleAdmin}

		_, err := env.svc.Update(context.Background(), admin, id, &UpdateReviewRequest{Rating: 5})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("отзыв не найден", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.svc.Update(context.Background(), owner, 404, &UpdateReviewRequest{Rating: 5})
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})

	t.Run("рейтинг вне шкалы", func(t *testing.T) {
		env := newTestEnv()
		id := seedReview(env, owner.ID, 2)

		_, err := env.svc.Update(context.Background(), owner, id, &UpdateReviewRequest{Rating: 6})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestDelete(t *testing.T) {
	owner := &domain.User{ID: 10, Role: domain.RoleUser}

	t.Run("автор удаляет свой отзыв и агрегаты пересчитываются", func(t *testing.T) {
		env := newTestEnv()
		id := seedReview(env, owner.ID, 4)
		env.reviews.aggRating = 0
		env.reviews.aggCount = 0

		err := env.svc.Delete(context.Background(), owner, id)
		require.NoError(t, err)

		assert.NotContains(t, env.reviews.reviews, id)
		require.Len(t, env.fields.updates, 1)
		assert.Equal(t, ratingUpdate{fieldID: 1, rating: 0, count: 0}, env.fields.updates[0])
	})

	t.Run("администратор удаляет чужой отзыв", func(t *testing.T) {
		env := newTestEnv()
		id := seedReview(env, 99, 4)
		admin := &domain.User{ID: 1, Role: domain.RoleAdmin}

		err := env.svc.Delete(context.Background(), admin, id)
		require.NoError(t, err)
		assert.NotContains(t, env.reviews.reviews, id)
	})

	t.Run("посторонний пользователь получает отказ", func(t *testing.T) {
		env := newTestEnv()
		id := seedReview(env, 99, 4)

		err := env.svc.Delete(context.Background(), owner, id)
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Contains(t, env.reviews.reviews, id)
	})

	t.Run("отзыв не найден", func(t *testing.T) {
		env := newTestEnv()

		err := env.svc.Delete(context.Background(), owner, 404)
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})
}
