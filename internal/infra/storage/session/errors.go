package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrRescheduleConflict возвращается, когда условный перенос не прошёл:
	// сессия уже не в статусе scheduled или окно подключения открылось
	ErrRescheduleConflict = errors.New("session.repository: reschedule precondition failed")

	// ErrStatusConflict возвращается, когда условный переход статуса не прошёл
	ErrStatusConflict = errors.New("session.repository: status precondition failed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("session.repository: failed to scan row")
)
