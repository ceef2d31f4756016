package slot

import "errors"

var (
	// ErrSlotTaken возвращается, когда хотя бы один слот из пакета уже занят
	// Уникальный индекс (field_id, reservation_date, slot_label) — финальный
	// арбитр: даже проскочившая мимо предварительной проверки гонка
	// превращается в эту ошибку, а не в двойное бронирование
	ErrSlotTaken = errors.New("slot.repository: slot already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
