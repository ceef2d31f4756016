package user

import "errors"

var (
	// ErrUserNotFound - пользователь не найден
	ErrUserNotFound = errors.New("user.repository: user not found")
	// ErrDuplicateUser - пользователь с таким email или именем уже существует
	ErrDuplicateUser = errors.New("user.repository: duplicate user")
	// ErrBuildQuery - ошибка построения SQL запроса
	ErrBuildQuery = errors.New("user.repository: failed to build query")
	// ErrExecQuery - ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("user.repository: failed to execute query")
	// ErrScanRow - ошибка сканирования результата запроса
	ErrScanRow = errors.New("user.repository: failed to scan row")
)
