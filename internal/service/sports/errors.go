package sports

import "errors"

var (
	// ErrSportNotFound возвращается, когда вид спорта не найден
	ErrSportNotFound = errors.New("sport not found")

	// ErrSportAlreadyExists возвращается, когда вид спорта уже есть в каталоге
	ErrSportAlreadyExists = errors.New("sport already exists")

	// ErrAccessDenied возвращается, когда операция доступна только администратору
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
