package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrOwnerNotFound возвращается, когда компания записи не найдена
	ErrOwnerNotFound = errors.New("appointments: owner not found")

	// ErrCancellationWindowClosed возвращается, когда до записи осталось меньше времени, чем допускает компания
	ErrCancellationWindowClosed = errors.New("appointments: cancellation window closed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
