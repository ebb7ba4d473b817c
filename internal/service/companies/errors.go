package companies

import "errors"

var (
	// ErrOwnerNotFound возвращается, когда компания не найдена
	ErrOwnerNotFound = errors.New("companies: owner not found")

	// ErrInvalidFormat возвращается при некорректном формате времени отмены
	ErrInvalidFormat = errors.New("companies: invalid format")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("companies: internal error")
)
