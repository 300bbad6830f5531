package get_booking_quote

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге.
	// Расчёт полностью останавливается - частичная цена не возвращается
	ErrServiceNotFound = errors.New("get_booking_quote: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_booking_quote: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_booking_quote: internal error")
)
