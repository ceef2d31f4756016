package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	fieldRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/field"
	reservationRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/reservation"
	slotRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/slot"
	"github.com/ZHANGLudovic/Web-Project/internal/timeslot"
	"github.com/ZHANGLudovic/Web-Project/pkg/txmanager"
	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

// UseCase use case создания бронирования.
// Координатор: раскладывает интервал на слоты, проверяет занятость и пишет
// журнал бронирований вместе с индексом слотов в одной сериализуемой транзакции
type UseCase struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	fieldRepo       FieldRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
	metrics         Metrics
	slotMinutes     int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	fieldRepo FieldRepository,
	txManager TransactionManager,
	logger Logger,
	metrics Metrics,
	slotMinutes int,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		fieldRepo:       fieldRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		metrics:         metrics,
		slotMinutes:     slotMinutes,
	}
}

// Execute выполняет use case создания бронирования
// Либо бронирование и все его слоты записаны целиком, либо не записано ничего
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, field=%d, date=%s, interval=%s-%s",
		req.UserID, req.FieldID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем площадку
	field, err := uc.fieldRepo.GetByID(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			uc.logger.Warn("CreateReservation: field id=%d not found", req.FieldID)
			return nil, ErrFieldNotFound
		}
		uc.logger.Error("CreateReservation: failed to get field id=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}

	// 4. Раскладываем интервал на слоты в пределах рабочих часов площадки
	labels, err := timeslot.DecomposeWithin(
		req.StartTime, req.EndTime, field.OpenTime, field.CloseTime, uc.slotMinutes)
	if err != nil {
		if errors.Is(err, timeslot.ErrOutsideHours) {
			uc.logger.Warn("CreateReservation: interval %s-%s is outside field hours %s-%s",
				req.StartTime, req.EndTime, field.OpenTime, field.CloseTime)
			return nil, fmt.Errorf("%w: field is open %s-%s", ErrFieldClosed, field.OpenTime, field.CloseTime)
		}
		uc.logger.Warn("CreateReservation: interval decomposition failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	// 5. Стоимость: число слотов * длительность слота * цена за час
	totalPrice := float64(len(labels)*uc.slotMinutes) / 60.0 * field.PricePerHour

	// Переменная для хранения результата
	var result *domain.Reservation

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Предварительная проверка занятости: согласованный снимок
		occupied, err := uc.slotRepo.GetOccupied(txCtx, req.FieldID, req.Date, labels)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check occupied slots: %v", err)
			return fmt.Errorf("%w: failed to check occupied slots: %v", ErrInternal, err)
		}
		if len(occupied) > 0 {
			return &SlotConflictError{Labels: occupied}
		}

		// 6.2. Пишем строку в журнал бронирований
		reservation := &domain.Reservation{
			UserID:          req.UserID,
			FieldID:         req.FieldID,
			ReservationDate: req.Date,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			Status:          domain.StatusConfirmed,
			TotalPrice:      totalPrice,
			Notes:           req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}

		// 6.3. Занимаем все слоты одним пакетом
		if err := uc.slotRepo.InsertBatch(txCtx, created.ID, req.FieldID, req.Date, labels); err != nil {
			return fmt.Errorf("insert slots: %w", err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.classifyTxError(ctx, req, labels, err)
	}

	uc.metrics.IncReservationCreated()
	uc.logger.Info("CreateReservation: successfully created reservation id=%d, slots=%d",
		result.ID, len(labels))

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		FieldID:         result.FieldID,
		ReservationDate: result.ReservationDate,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		Status:          string(result.Status),
		TotalPrice:      result.TotalPrice,
		Notes:           result.Notes,
		SlotLabels:      labels,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// classifyTxError переводит ошибку транзакции в ошибку для пользователя.
// Нарушение уникальности индекса слотов и проигранная сериализация — это
// разные ответы: первое означает занятый слот, второе — "повторите запрос"
func (uc *UseCase) classifyTxError(
	ctx context.Context,
	req *Request,
	labels []types.TimeString,
	err error,
) error {
	// Конфликт найден предварительной проверкой внутри транзакции
	var conflictErr *SlotConflictError
	if errors.As(err, &conflictErr) {
		uc.metrics.IncSlotConflict()
		uc.logger.Warn("CreateReservation: slot conflict: %v", conflictErr)
		return conflictErr
	}

	// Транзакция проиграла гонку на уровне сериализации
	if errors.Is(err, txmanager.ErrSerialization) {
		uc.metrics.IncSerializationFailure()
		uc.logger.Warn("CreateReservation: serialization failure: %v", err)
		return fmt.Errorf("%w: %v", ErrConflictRetryable, err)
	}

	// Нарушение уникальности при вставке: гонка дошла до индекса.
	// Перечитываем зафиксированное состояние, чтобы отличить реально
	// занятый слот от скоротечной гонки
	if errors.Is(err, slotRepo.ErrSlotTaken) || errors.Is(err, reservationRepo.ErrDuplicateReservation) {
		occupied, qErr := uc.slotRepo.GetOccupied(ctx, req.FieldID, req.Date, labels)
		if qErr == nil && len(occupied) > 0 {
			uc.metrics.IncSlotConflict()
			uc.logger.Warn("CreateReservation: slot conflict after commit race: %v", occupied)
			return &SlotConflictError{Labels: occupied}
		}

		uc.metrics.IncSerializationFailure()
		uc.logger.Warn("CreateReservation: transient conflict: %v", err)
		return fmt.Errorf("%w: %v", ErrConflictRetryable, err)
	}

	if errors.Is(err, ErrInternal) {
		return err
	}

	uc.logger.Error("CreateReservation: transaction failed: %v", err)
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
