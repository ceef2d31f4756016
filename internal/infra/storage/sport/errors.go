package sport

import "errors"

var (
	// ErrSportNotFound - вид спорта не найден
	ErrSportNotFound = errors.New("sport.repository: sport not found")
	// ErrDuplicateSport - вид спорта с таким именем уже существует
	ErrDuplicateSport = errors.New("sport.repository: duplicate sport")
	// ErrBuildQuery - ошибка построения SQL запроса
	ErrBuildQuery = errors.New("sport.repository: failed to build query")
	// ErrExecQuery - ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("sport.repository: failed to execute query")
	// ErrScanRow - ошибка сканирования результата запроса
	ErrScanRow = errors.New("sport.repository: failed to scan row")
)
