package make_appointment

import "errors"

var (
	// ErrInvalidFormat возвращается при некорректных входных данных (пустой заголовок, телефон не в E.164)
	ErrInvalidFormat = errors.New("make_appointment: invalid format")

	// ErrPastTime возвращается, когда время записи не позже текущего момента
	ErrPastTime = errors.New("make_appointment: time is in the past")

	// ErrOwnerNotFound возвращается, когда пара компания/сотрудник не зарегистрирована
	ErrOwnerNotFound = errors.New("make_appointment: owner not found")

	// ErrTimeAlreadyTaken возвращается, когда на это время у владельца уже есть запись
	ErrTimeAlreadyTaken = errors.New("make_appointment: time already taken")

	// ErrTimeNotAvailable возвращается, когда время не совпадает с началом свободного слота
	ErrTimeNotAvailable = errors.New("make_appointment: time is not available")

	// ErrNoSchedulesConfigured возвращается, когда на дату записи нет ни одного расписания
	ErrNoSchedulesConfigured = errors.New("make_appointment: no schedules configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("make_appointment: internal error")
)
