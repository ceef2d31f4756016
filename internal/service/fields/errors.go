package fields

import "errors"

var (
	// ErrFieldNotFound возвращается, когда площадка не найдена
	ErrFieldNotFound = errors.New("field not found")

	// ErrFieldAlreadyExists возвращается при попытке создать площадку с занятым именем
	ErrFieldAlreadyExists = errors.New("field already exists")

	// ErrAccessDenied возвращается, когда операция доступна только администратору
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
