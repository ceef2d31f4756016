package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	reservationRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/reservation"
	"github.com/ZHANGLudovic/Web-Project/pkg/txmanager"
)

// UseCase use case отмены бронирования.
// Снимает запись журнала и все её слоты в одной транзакции: слоты либо
// освобождаются все разом, либо бронирование остаётся нетронутым
type UseCase struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	txManager       TransactionManager
	logger          Logger
	metrics         Metrics
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
	metrics Metrics,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		logger:          logger,
		metrics:         metrics,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: reservation=%d, user=%d", req.ReservationID, req.UserID)

	// 1. Валидация входных данных
	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	var freed int64

	// 2. Проверка прав и удаление в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 2.2. Отменить бронирование может владелец или администратор
		if !reservation.IsOwnedBy(req.UserID) && !req.IsAdmin {
			uc.logger.Warn("CancelReservation: user %d is not the owner of reservation %d",
				req.UserID, req.ReservationID)
			return ErrForbidden
		}

		// 2.3. Освобождаем слоты индекса
		freed, err = uc.slotRepo.DeleteByReservation(txCtx, req.ReservationID)
		if err != nil {
			return fmt.Errorf("%w: failed to free slots: %v", ErrInternal, err)
		}

		// 2.4. Удаляем запись журнала. ON DELETE CASCADE в БД страхует
		// от осиротевших слотов, если порядок шагов когда-нибудь поменяется
		if err := uc.reservationRepo.Delete(txCtx, req.ReservationID); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to delete reservation: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound),
			errors.Is(err, ErrForbidden),
			errors.Is(err, ErrInternal):
			return nil, err
		case errors.Is(err, txmanager.ErrSerialization):
			uc.logger.Warn("CancelReservation: serialization failure: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrConflictRetryable, err)
		default:
			uc.logger.Error("CancelReservation: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.metrics.IncReservationCancelled()
	uc.logger.Info("CancelReservation: reservation %d cancelled, %d slots freed",
		req.ReservationID, freed)

	return &Response{
		ReservationID: req.ReservationID,
		FreedSlots:    freed,
	}, nil
}
