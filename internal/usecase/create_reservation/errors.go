package create_reservation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

var (
	// ErrFieldNotFound возвращается, когда площадка не найдена
	ErrFieldNotFound = errors.New("create_reservation: field not found")

	// ErrFieldClosed возвращается, когда интервал выходит за рабочие часы площадки
	ErrFieldClosed = errors.New("create_reservation: field is closed at this time")

	// ErrInvalidInterval возвращается при некорректном интервале:
	// конец не позже начала или границы не кратны длительности слота
	ErrInvalidInterval = errors.New("create_reservation: invalid time interval")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrSlotConflict возвращается, когда хотя бы один запрошенный слот занят
	ErrSlotConflict = errors.New("create_reservation: slot conflict")

	// ErrConflictRetryable возвращается, когда запрос проиграл гонку
	// конкурирующей транзакции; повтор того же запроса может пройти
	ErrConflictRetryable = errors.New("create_reservation: concurrent conflict, retry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// SlotConflictError несёт точный список занятых слотов, помешавших бронированию
type SlotConflictError struct {
	Labels []types.TimeString
}

func (e *SlotConflictError) Error() string {
	labels := make([]string, 0, len(e.Labels))
	for _, l := range e.Labels {
		labels = append(labels, l.String())
	}
	return fmt.Sprintf("create_reservation: slots already taken: %s", strings.Join(labels, ", "))
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrSlotConflict)
func (e *SlotConflictError) Unwrap() error {
	return ErrSlotConflict
}
