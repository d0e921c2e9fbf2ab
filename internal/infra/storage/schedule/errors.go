package schedule

import "errors"

var (
	// ErrLunchExceptionNotFound возвращается, когда исключение обеда не найдено
	ErrLunchExceptionNotFound = errors.New("schedule.repository: lunch exception not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
