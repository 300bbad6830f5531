package respond_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("respond_booking: booking not found")

	// ErrAccessDenied возвращается, когда отвечает не провайдер, владеющий услугой
	ErrAccessDenied = errors.New("respond_booking: access denied")

	// ErrBookingExpired возвращается, когда окно ответа на мгновенную заявку истекло
	ErrBookingExpired = errors.New("respond_booking: booking has expired")

	// ErrStatusConflict возвращается, когда заявка уже в терминальном статусе.
	// В том числе когда параллельный ответ успел выиграть гонку
	ErrStatusConflict = errors.New("respond_booking: booking is not pending")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("respond_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("respond_booking: internal error")
)
