package field

import "errors"

var (
	// ErrFieldNotFound - площадка не найдена
	ErrFieldNotFound = errors.New("field.repository: field not found")
	// ErrDuplicateField - площадка с таким именем уже существует
	ErrDuplicateField = errors.New("field.repository: duplicate field")
	// ErrBuildQuery - ошибка построения SQL запроса
	ErrBuildQuery = errors.New("field.repository: failed to build query")
	// ErrExecQuery - ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("field.repository: failed to execute query")
	// ErrScanRow - ошибка сканирования результата запроса
	ErrScanRow = errors.New("field.repository: failed to scan row")
)
