package reschedule_session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("reschedule_session: session not found")

	// ErrAccessDenied возвращается, когда пользователь не участник сессии
	ErrAccessDenied = errors.New("reschedule_session: access denied")

	// ErrTimeInPast возвращается, когда новое время начала не в будущем
	ErrTimeInPast = errors.New("reschedule_session: new start time must be in the future")

	// ErrRescheduleLocked возвращается, когда окно подключения уже открылось
	// или сессия вышла из статуса scheduled
	ErrRescheduleLocked = errors.New("reschedule_session: session can no longer be rescheduled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_session: internal error")
)
