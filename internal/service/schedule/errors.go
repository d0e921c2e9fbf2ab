package schedule

import "errors"

var (
	// ErrLunchExceptionNotFound возвращается, когда исключение обеда не найдено
	ErrLunchExceptionNotFound = errors.New("lunch exception not found")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
