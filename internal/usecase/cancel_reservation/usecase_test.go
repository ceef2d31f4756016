package cancel_reservation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	reservationRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/reservation"
	"github.com/ZHANGLudovic/Web-Project/pkg/txmanager"
	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

// Фейки зависимостей use case

type fakeReservationRepo struct {
	reservation *domain.Reservation
	getErr      error
	deleted     []int64
	deleteErr   error
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.reservation, nil
}

func (f *fakeReservationRepo) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSlotRepo struct {
	freed     int64
	deleteErr error
	calls     []int64
}

func (f *fakeSlotRepo) DeleteByReservation(_ context.Context, reservationID int64) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.calls = append(f.calls, reservationID)
	return f.freed, nil
}

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeMetrics struct {
	cancelled int
}

func (f *fakeMetrics) IncReservationCancelled() { f.cancelled++ }

func testReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:              42,
		UserID:          10,
		FieldID:         1,
		ReservationDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("08:00"),
		EndTime:         types.TimeString("11:00"),
		Status:          domain.StatusConfirmed,
	}
}

type testEnv struct {
	uc          *UseCase
	reservation *fakeReservationRepo
	slots       *fakeSlotRepo
	tx          *fakeTxManager
	metrics     *fakeMetrics
}

func newTestEnv() *testEnv {
	env := &testEnv{
		reservation: &fakeReservationRepo{reservation: testReservation()},
		slots:       &fakeSlotRepo{freed: 3},
		tx:          &fakeTxManager{},
		metrics:     &fakeMetrics{},
	}

	env.uc = NewUseCase(env.reservation, env.slots, env.tx, nopLogger{}, env.metrics)

	return env
}

func TestExecute_OwnerCancels(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), &Request{ReservationID: 42, UserID: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ReservationID)
	assert.Equal(t, int64(3), resp.FreedSlots)

	// И слоты, и запись журнала удалены
	assert.Equal(t, []int64{42}, env.slots.calls)
	assert.Equal(t, []int64{42}, env.reservation.deleted)
	assert.Equal(t, 1, env.metrics.cancelled)
}

func TestExecute_AdminCancelsForeign(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), &Request{ReservationID: 42, UserID: 99, IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.FreedSlots)
}

func TestExecute_ForeignUserForbidden(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.Execute(context.Background(), &Request{ReservationID: 42, UserID: 99})
	assert.ErrorIs(t, err, ErrForbidden)

	// Ничего не удалено
	assert.Empty(t, env.slots.calls)
	assert.Empty(t, env.reservation.deleted)
	assert.Equal(t, 0, env.metrics.cancelled)
}

func TestExecute_ReservationNotFound(t *testing.T) {
	env := newTestEnv()
	env.reservation.getErr = fmt.Errorf("%w: GetByID - id=42", reservationRepo.ErrReservationNotFound)

	_, err := env.uc.Execute(context.Background(), &Request{ReservationID: 42, UserID: 10})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_SerializationFailure(t *testing.T) {
	env := newTestEnv()
	env.tx.err = fmt.Errorf("%w: commit lost the race", txmanager.ErrSerialization)

	_, err := env.uc.Execute(context.Background(), &Request{ReservationID: 42, UserID: 10})
	assert.ErrorIs(t, err, ErrConflictRetryable)
	assert.Equal(t, 0, env.metrics.cancelled)
}

func TestExecute_InvalidInput(t *testing.T) {
	env := newTestEnv()

	t.Run("нулевой id бронирования", func(t *testing.T) {
		_, err := env.uc.Execute(context.Background(), &Request{ReservationID: 0, UserID: 10})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("нулевой id пользователя", func(t *testing.T) {
		_, err := env.uc.Execute(context.Background(), &Request{ReservationID: 42, UserID: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
