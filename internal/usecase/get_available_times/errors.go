package get_available_times

import "errors"

var (
	// ErrInvalidFormat возвращается при некорректных входных данных (дата не в формате MM/DD/YYYY)
	ErrInvalidFormat = errors.New("get_available_times: invalid format")

	// ErrOwnerNotFound возвращается, когда пара компания/сотрудник не зарегистрирована
	ErrOwnerNotFound = errors.New("get_available_times: owner not found")

	// ErrNoSchedulesConfigured возвращается, когда на дату не действует ни одно расписание
	ErrNoSchedulesConfigured = errors.New("get_available_times: no schedules configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_times: internal error")
)
