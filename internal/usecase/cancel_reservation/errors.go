package cancel_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrForbidden возвращается, когда пользователь пытается отменить чужое бронирование
	ErrForbidden = errors.New("cancel_reservation: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrConflictRetryable возвращается, когда отмена проиграла гонку
	// конкурирующей транзакции; повтор запроса может пройти
	ErrConflictRetryable = errors.New("cancel_reservation: concurrent conflict, retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_reservation: internal error")
)
