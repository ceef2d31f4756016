package get_available_slots

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	fieldRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/field"
	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

type fakeSlotRepo struct {
	reserved []types.TimeString
	err      error
}

func (f *fakeSlotRepo) GetByFieldAndDate(_ context.Context, _ int64, _ time.Time) ([]types.TimeString, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reserved, nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newUseCaseWith(slots *fakeSlotRepo, fields *fakeFieldRepo) *UseCase {
	return NewUseCase(slots, fields, nopLogger{}, 60)
}

func TestExecute_GridMinusReserved(t *testing.T) {
	slots := &fakeSlotRepo{reserved: []types.TimeString{"09:00", "10:00"}}
	fields := &fakeFieldRepo{field: &domain.Field{
		ID:        1,
		OpenTime:  types.TimeString("08:00"),
		CloseTime: types.TimeString("12:00"),
	}}
	uc := newUseCaseWith(slots, fields)

	resp, err := uc.Execute(context.Background(), &Request{
		FieldID: 1,
		Date:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"08:00", "09:00", "10:00", "11:00"}, resp.AllSlots)
	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, resp.ReservedSlots)
	assert.Equal(t, []types.TimeString{"08:00", "11:00"}, resp.AvailableSlots)
}

func TestExecute_EmptyDay(t *testing.T) {
	slots := &fakeSlotRepo{}
	fields := &fakeFieldRepo{field: &domain.Field{
		ID:        1,
		OpenTime:  types.TimeString("08:00"),
		CloseTime: types.TimeString("22:00"),
	}}
	uc := newUseCaseWith(slots, fields)

	resp, err := uc.Execute(context.Background(), &Request{
		FieldID: 1,
		Date:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// 08:00..21:00 — четырнадцать часовых слотов, все свободны
	assert.Len(t, resp.AllSlots, 14)
	assert.Equal(t, resp.AllSlots, resp.AvailableSlots)
	assert.Empty(t, resp.ReservedSlots)
}

func TestExecute_FieldNotFound(t *testing.T) {
	slots := &fakeSlotRepo{}
	fields := &fakeFieldRepo{err: fmt.Errorf("%w: GetByID - id=7", fieldRepo.ErrFieldNotFound)}
	uc := newUseCaseWith(slots, fields)

	_, err := uc.Execute(context.Background(), &Request{
		FieldID: 7,
		Date:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newUseCaseWith(&fakeSlotRepo{}, &fakeFieldRepo{})

	t.Run("нулевой id площадки", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{Date: time.Now()})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("нулевая дата", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{FieldID: 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
