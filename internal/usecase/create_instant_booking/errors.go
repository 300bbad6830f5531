package create_instant_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_instant_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена провайдером
	ErrServiceInactive = errors.New("create_instant_booking: service is inactive")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_instant_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_instant_booking: internal error")
)
