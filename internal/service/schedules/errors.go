package schedules

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("schedules: schedule not found")

	// ErrOwnerNotFound возвращается, когда пара компания/сотрудник не зарегистрирована
	ErrOwnerNotFound = errors.New("schedules: owner not found")

	// ErrInvalidFormat возвращается при некорректном формате дат, времени, длительностей или дней недели
	ErrInvalidFormat = errors.New("schedules: invalid format")

	// ErrShiftStartAfterEnd возвращается, когда начало смены не раньше её конца
	ErrShiftStartAfterEnd = errors.New("schedules: shift start must be before shift end")

	// ErrDurationExceedsShift возвращается, когда длительность слота больше длины смены
	ErrDurationExceedsShift = errors.New("schedules: slot duration exceeds shift length")

	// ErrBreakBeforeShiftStart возвращается, когда перерыв начинается раньше смены
	ErrBreakBeforeShiftStart = errors.New("schedules: break starts before shift start")

	// ErrPriorityTaken возвращается, когда приоритет уже занят другим расписанием владельца
	ErrPriorityTaken = errors.New("schedules: priority already taken")

	// ErrRecurrenceTypeChangeRequiresDates возвращается при смене типа повторения без новых дат
	ErrRecurrenceTypeChangeRequiresDates = errors.New("schedules: recurrence type change requires dates")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedules: internal error")
)
