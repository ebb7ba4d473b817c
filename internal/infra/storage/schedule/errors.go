package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда активное расписание не найдено
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrPriorityConflict возвращается при нарушении уникальности приоритета у владельца
	ErrPriorityConflict = errors.New("schedule.repository: priority already used by owner")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
