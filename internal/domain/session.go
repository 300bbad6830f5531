package domain

import "time"

// SessionStatus represents the status of a confirmed session
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// Session подтверждённая сессия, созданная из принятой заявки.
// StartTime неизменяем после выхода из статуса scheduled,
// кроме явного переноса строго до открытия окна подключения
type Session struct {
	ID         int64
	BookingID  int64
	ClientID   int64
	ProviderID int64
	ServiceID  int64

	StartTime time.Time
	EndTime   time.Time
	Status    SessionStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MinutesUntilStart возвращает количество минут до начала сессии.
// Отрицательное значение - сессия уже началась
func (s *Session) MinutesUntilStart(now time.Time) float64 {
	return s.StartTime.Sub(now).Minutes()
}

// CanJoin returns true if a participant may join the call at the given time.
// Подключение открывается за 15 минут до начала и не закрывается после
// (сессии не завершаются автоматически), пока сессия не завершена и не отменена
func (s *Session) CanJoin(now time.Time) bool {
	if s.Status == SessionCompleted || s.Status == SessionCancelled {
		return false
	}
	return s.StartTime.Sub(now) <= JoinWindow
}

// CanReschedule returns true if the session may still be rescheduled.
// Перенос возможен только для scheduled сессий строго до открытия
// окна подключения, чтобы исключить перенос в последний момент
func (s *Session) CanReschedule(now time.Time) bool {
	if s.Status != SessionScheduled {
		return false
	}
	return s.StartTime.Sub(now) > JoinWindow
}

// IsFinished returns true if the session reached a terminal status
func (s *Session) IsFinished() bool {
	return s.Status == SessionCompleted || s.Status == SessionCancelled
}
