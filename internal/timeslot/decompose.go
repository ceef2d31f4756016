package timeslot

import (
	"errors"
	"fmt"

	"github.com/ZHANGLudovic/Web-Project/pkg/types"
)

var (
	// ErrInvalidInterval возвращается, когда интервал пуст, перевернут,
	// не выровнен по сетке слотов или выходит за рабочие часы поля
	ErrInvalidInterval = errors.New("timeslot: invalid interval")

	// ErrInvalidDuration возвращается при недопустимой длительности слота
	ErrInvalidDuration = errors.New("timeslot: invalid slot duration")

	// ErrOutsideHours возвращается, когда корректный интервал выходит
	// за рабочие часы поля
	ErrOutsideHours = errors.New("timeslot: interval outside operating hours")
)

// Decompose разбивает интервал [start, end) на упорядоченную по возрастанию
// последовательность меток слотов с шагом slotMinutes
// Метка слота — время его начала ("08:00", "09:00", ...)
//
// Декомпозиция детерминирована и не имеет побочных эффектов; одна и та же
// функция используется и для резервирования, и для проверки доступности,
// чтобы никакие два вызывающих не разошлись в предположениях о сетке
func Decompose(start, end types.TimeString, slotMinutes int) ([]types.TimeString, error) {
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, slotMinutes)
	}

	startMin, err := start.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: start %q", ErrInvalidInterval, start)
	}
	endMin, err := end.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: end %q", ErrInvalidInterval, end)
	}

	if endMin <= startMin {
		return nil, fmt.Errorf("%w: end %s is not after start %s", ErrInvalidInterval, end, start)
	}
	if startMin%slotMinutes != 0 || endMin%slotMinutes != 0 {
		return nil, fmt.Errorf("%w: bounds %s-%s are not aligned to %d-minute slots",
			ErrInvalidInterval, start, end, slotMinutes)
	}

	labels := make([]types.TimeString, 0, (endMin-startMin)/slotMinutes)
	for m := startMin; m < endMin; m += slotMinutes {
		label, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
		}
		labels = append(labels, label)
	}

	return labels, nil
}

// DecomposeWithin декомпозирует интервал и дополнительно проверяет,
// что он целиком лежит в рабочих часах [open, close)
func DecomposeWithin(start, end, open, close types.TimeString, slotMinutes int) ([]types.TimeString, error) {
	labels, err := Decompose(start, end, slotMinutes)
	if err != nil {
		return nil, err
	}

	if start.IsBefore(open) || end.IsAfter(close) {
		return nil, fmt.Errorf("%w: %s-%s is outside operating hours %s-%s",
			ErrOutsideHours, start, end, open, close)
	}

	return labels, nil
}

// DayLabels возвращает полный набор меток слотов рабочего дня поля
// Последний слот начинается не позже close - slotMinutes
func DayLabels(open, close types.TimeString, slotMinutes int) ([]types.TimeString, error) {
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, slotMinutes)
	}

	openMin, err := open.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: open %q", ErrInvalidInterval, open)
	}
	closeMin, err := close.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: close %q", ErrInvalidInterval, close)
	}
	if closeMin <= openMin {
		return nil, fmt.Errorf("%w: close %s is not after open %s", ErrInvalidInterval, close, open)
	}

	labels := make([]types.TimeString, 0, (closeMin-openMin)/slotMinutes)
	for m := openMin; m+slotMinutes <= closeMin; m += slotMinutes {
		label, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
		}
		labels = append(labels, label)
	}

	return labels, nil
}
