package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	fieldRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/field"
	"github.com/ZHANGLudovic/Web-Project/internal/timeslot"
	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

// UseCase use case получения слотов площадки на дату.
// Чистое чтение: один снимок занятых слотов, состояние не меняет
type UseCase struct {
	slotRepo    SlotRepository
	fieldRepo   FieldRepository
	logger      Logger
	slotMinutes int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	fieldRepo FieldRepository,
	logger Logger,
	slotMinutes int,
) *UseCase {
	return &UseCase{
		slotRepo:    slotRepo,
		fieldRepo:   fieldRepo,
		logger:      logger,
		slotMinutes: slotMinutes,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.FieldID <= 0 {
		return nil, fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем площадку ради её рабочих часов
	field, err := uc.fieldRepo.GetByID(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			uc.logger.Warn("GetAvailableSlots: field id=%d not found", req.FieldID)
			return nil, ErrFieldNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get field id=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}

	// 3. Полная сетка слотов рабочего дня
	allSlots, err := timeslot.DayLabels(field.OpenTime, field.CloseTime, uc.slotMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build day labels for field id=%d: %v",
			req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to build day labels: %v", ErrInternal, err)
	}

	// 4. Занятые слоты на дату
	reserved, err := uc.slotRepo.GetByFieldAndDate(ctx, req.FieldID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reserved slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get reserved slots: %v", ErrInternal, err)
	}

	// 5. Свободные = сетка минус занятые
	reservedSet := make(map[types.TimeString]struct{}, len(reserved))
	for _, label := range reserved {
		reservedSet[label] = struct{}{}
	}

	available := make([]types.TimeString, 0, len(allSlots))
	for _, label := range allSlots {
		if _, ok := reservedSet[label]; !ok {
			available = append(available, label)
		}
	}

	uc.logger.Info("GetAvailableSlots: field=%d, date=%s, %d/%d slots available",
		req.FieldID, req.Date.Format(domain.DateFormat), len(available), len(allSlots))

	return &Response{
		FieldID:        req.FieldID,
		Date:           req.Date,
		AllSlots:       allSlots,
		ReservedSlots:  reserved,
		AvailableSlots: available,
	}, nil
}
