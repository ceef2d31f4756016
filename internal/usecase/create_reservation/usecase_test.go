package create_reservation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	fieldRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/field"
	slotRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/slot"
	"github.com/ZHANGLudovic/Web-Project/pkg/ptr"
	"github.com/ZHANGLudovic/Web-Project/pkg/txmanager"
	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

// Фейки зависимостей use case

type fakeReservationRepo struct {
	created   []*domain.Reservation
	createErr error
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *res
	stored.ID = int64(len(f.created) + 1)
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.created = append(f.created, &stored)
	return &stored, nil
}

type fakeSlotRepo struct {
	// Очередь ответов GetOccupied: первый вызов — проверка в транзакции,
	// второй — перечитывание при классификации конфликта
	occupiedQueue [][]types.TimeString
	insertErr     error
	inserted      []types.TimeString
}

func (f *fakeSlotRepo) GetOccupied(_ context.Context, _ int64, _ time.Time, _ []types.TimeString) ([]types.TimeString, error) {
	if len(f.occupiedQueue) == 0 {
		return []types.TimeString{}, nil
	}
	result := f.occupiedQueue[0]
	f.occupiedQueue = f.occupiedQueue[1:]
	return result, nil
}

func (f *fakeSlotRepo) InsertBatch(_ context.Context, _, _ int64, _ time.Time, labels []types.TimeString) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, labels...)
	return nil
}

type fakeFieldRepo struct {
	field *domain.Field
	err   error
}

func (f *fakeFieldRepo) GetByID(_ context.Context, _ int64) (*domain.Field, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.field, nil
}

type fakeTxManager struct {
	// err подменяет результат транзакции (например, serialization failure)
	err   error
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeMetrics struct {
	created, conflicts, serializationFailures int
}

func (f *fakeMetrics) IncReservationCreated()   { f.created++ }
func (f *fakeMetrics) IncSlotConflict()         { f.conflicts++ }
func (f *fakeMetrics) IncSerializationFailure() { f.serializationFailures++ }

func testField() *domain.Field {
	return &domain.Field{
		ID:           1,
		Name:         "Центральный стадион",
		OpenTime:     types.TimeString("08:00"),
		CloseTime:    types.TimeString("22:00"),
		PricePerHour: 500,
	}
}

func testRequest() *Request {
	return &Request{
		UserID:    10,
		FieldID:   1,
		Date:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("08:00"),
		EndTime:   types.TimeString("11:00"),
	}
}

type testEnv struct {
	uc          *UseCase
	reservation *fakeReservationRepo
	slots       *fakeSlotRepo
	fields      *fakeFieldRepo
	tx          *fakeTxManager
	metrics     *fakeMetrics
}

func newTestEnv() *testEnv {
	env := &testEnv{
		reservation: &fakeReservationRepo{},
		slots:       &fakeSlotRepo{},
		fields:      &fakeFieldRepo{field: testField()},
		tx:          &fakeTxManager{},
		metrics:     &fakeMetrics{},
	}

	env.uc = NewUseCase(env.reservation, env.slots, env.fields, env.tx, nopLogger{}, env.metrics, 60)
	env.uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	return env
}

func TestExecute_Success(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	// Интервал 08:00-11:00 разложен ровно на три часовых слота
	assert.Equal(t, []types.TimeString{"08:00", "09:00", "10:00"}, resp.SlotLabels)
	assert.Equal(t, []types.TimeString{"08:00", "09:00", "10:00"}, env.slots.inserted)

	// 3 часа по 500
	assert.Equal(t, 1500.0, resp.TotalPrice)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	require.Len(t, env.reservation.created, 1)
	assert.Equal(t, 1, env.metrics.created)
	assert.Equal(t, 1, env.tx.calls)
}

func TestExecute_SlotConflict_PreCheck(t *testing.T) {
	env := newTestEnv()
	env.slots.occupiedQueue = [][]types.TimeString{{"09:00"}}

	_, err := env.uc.Execute(context.Background(), testRequest())
	require.Error(t, err)

	// Ровно занятые метки, без лишних
	var conflictErr *SlotConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, []types.TimeString{"09:00"}, conflictErr.Labels)
	assert.ErrorIs(t, err, ErrSlotConflict)

	// До записи журнала дело не дошло
	assert.Empty(t, env.reservation.created)
	assert.Empty(t, env.slots.inserted)
	assert.Equal(t, 1, env.metrics.conflicts)
	assert.Equal(t, 0, env.metrics.created)
}

func TestExecute_SlotConflict_CommitRace(t *testing.T) {
	env := newTestEnv()
	// Предварительная проверка чиста, но вставка натыкается на уникальный
	// индекс: конкурент успел раньше. Перечитывание видит его слот
	env.slots.insertErr = fmt.Errorf("%w: race", slotRepo.ErrSlotTaken)
	env.slots.occupiedQueue = [][]types.TimeString{{}, {"10:00"}}

	_, err := env.uc.Execute(context.Background(), testRequest())
	require.Error(t, err)

	var conflictErr *SlotConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, []types.TimeString{"10:00"}, conflictErr.Labels)
	assert.Equal(t, 1, env.metrics.conflicts)
}

func TestExecute_RetryableConflict_CommitRace(t *testing.T) {
	env := newTestEnv()
	// Unique violation, но после отката конкурирующая бронь уже отменена:
	// зафиксированное состояние чисто, клиенту предлагается повтор
	env.slots.insertErr = fmt.Errorf("%w: race", slotRepo.ErrSlotTaken)
	env.slots.occupiedQueue = [][]types.TimeString{{}, {}}

	_, err := env.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrConflictRetryable)
	assert.Equal(t, 1, env.metrics.serializationFailures)
}

func TestExecute_SerializationFailure(t *testing.T) {
	env := newTestEnv()
	env.tx.err = fmt.Errorf("%w: commit lost the race", txmanager.ErrSerialization)

	_, err := env.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrConflictRetryable)
	assert.Equal(t, 1, env.metrics.serializationFailures)
	assert.Equal(t, 0, env.metrics.created)
}

func TestExecute_InvalidInterval(t *testing.T) {
	env := newTestEnv()

	t.Run("нулевой интервал", func(t *testing.T) {
		req := testRequest()
		req.StartTime = types.TimeString("08:00")
		req.EndTime = types.TimeString("08:00")

		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("границы не на сетке", func(t *testing.T) {
		req := testRequest()
		req.StartTime = types.TimeString("08:30")
		req.EndTime = types.TimeString("09:30")

		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	// Транзакция ни разу не открывалась
	assert.Equal(t, 0, env.tx.calls)
}

func TestExecute_FieldClosed(t *testing.T) {
	env := newTestEnv()

	req := testRequest()
	req.StartTime = types.TimeString("21:00")
	req.EndTime = types.TimeString("23:00")

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrFieldClosed)
	assert.Equal(t, 0, env.tx.calls)
}

func TestExecute_FieldNotFound(t *testing.T) {
	env := newTestEnv()
	env.fields.err = fmt.Errorf("%w: GetByID - id=1", fieldRepo.ErrFieldNotFound)

	_, err := env.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestExecute_DateInPast(t *testing.T) {
	env := newTestEnv()

	req := testRequest()
	req.Date = time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_TodayOnWesternServer(t *testing.T) {
	// Дата запроса приходит в UTC, сервер живёт западнее.
	// Сегодняшняя дата не должна считаться прошедшей
	env := newTestEnv()
	env.uc.timeProvider = &fakeTimeProvider{
		now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60)),
	}

	req := testRequest()
	req.Date = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	_, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_TotalPrice(t *testing.T) {
	t.Run("отрицательная стоимость отклоняется", func(t *testing.T) {
		env := newTestEnv()

		req := testRequest()
		req.TotalPrice = ptr.Ptr(-100.0)

		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, 0, env.tx.calls)
	})

	t.Run("стоимость клиента не подменяет расчёт по тарифу", func(t *testing.T) {
		env := newTestEnv()

		req := testRequest()
		req.TotalPrice = ptr.Ptr(1.0)

		resp, err := env.uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 1500.0, resp.TotalPrice)
	})
}

func TestExecute_InvalidInput(t *testing.T) {
	env := newTestEnv()

	req := testRequest()
	req.UserID = 0

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
