package create_scheduled_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_scheduled_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена провайдером
	ErrServiceInactive = errors.New("create_scheduled_booking: service is inactive")

	// ErrTimeInPast возвращается, когда запрошенное время не в будущем
	ErrTimeInPast = errors.New("create_scheduled_booking: requested time must be in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_scheduled_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_scheduled_booking: internal error")
)
