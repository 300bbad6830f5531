package reschedule_session

import "time"

// Request модель запроса на перенос сессии
type Request struct {
	SessionID    int64     // ID сессии
	UserID       int64     // ID пользователя из заголовка авторизации
	NewStartTime time.Time // Новое время начала
}

// Response модель ответа с перенесённой сессией
type Response struct {
	ID         int64     // ID сессии
	BookingID  int64     // ID исходной заявки
	ClientID   int64     // ID клиента
	ProviderID int64     // ID провайдера
	ServiceID  int64     // ID услуги
	StartTime  time.Time // Новое время начала
	EndTime    time.Time // Новое время окончания
	Status     string    // Статус сессии
	UpdatedAt  time.Time // Время обновления
}
