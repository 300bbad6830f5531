package domain

import "time"

// Временные окна жизненного цикла
const (
	// InstantExpiryWindow фиксированное окно ответа на мгновенную заявку.
	// Системная константа, не настраивается per-service
	InstantExpiryWindow = 30 * time.Minute

	// MinAcceptedWindow гарантированный минимум времени на подключение
	// после принятия мгновенной заявки
	MinAcceptedWindow = 5 * time.Minute

	// JoinWindow за сколько минут до начала сессии открывается подключение.
	// Этим же окном закрывается возможность переноса
	JoinWindow = 15 * time.Minute
)

// Бизнес-ограничения валидации
const (
	MinBookingDurationMinutes = 5
	MaxBookingDurationMinutes = 480 // 8 часов
	MaxNotesLength            = 500
)

// Ограничения правил ценообразования
const (
	MinPeakMultiplier = 1.0
	MaxPeakMultiplier = 5.0
)

// Форматы времени
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список терминальных статусов заявки.
// После перехода в терминальный статус заявка не изменяется
var TerminalStatuses = []BookingStatus{
	StatusAccepted,
	StatusDeclined,
	StatusExpired,
	StatusCompleted,
}
