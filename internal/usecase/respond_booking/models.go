package respond_booking

import "time"

// Действия провайдера над заявкой
const (
	ActionAccept  = "accept"
	ActionDecline = "decline"
)

// Request модель запроса на ответ провайдера
type Request struct {
	BookingID int64  // ID заявки
	UserID    int64  // ID пользователя из заголовка авторизации
	Action    string // accept или decline
}

// SessionInfo данные о сессии, созданной при принятии заявки
type SessionInfo struct {
	ID        int64     // ID сессии
	StartTime time.Time // Время начала
	EndTime   time.Time // Время окончания
	Status    string    // Статус сессии
}

// Response модель ответа с обновлённой заявкой
type Response struct {
	ID          int64      // ID заявки
	ClientID    int64      // ID клиента
	ProviderID  int64      // ID провайдера
	ServiceID   int64      // ID услуги
	IsInstant   bool       // Тип заявки
	Status      string     // Новый статус заявки
	RespondedAt *time.Time // Время ответа

	// Дедлайн подключения для принятых мгновенных заявок
	AcceptedDeadline *time.Time

	// Сессия создаётся только при принятии
	Session *SessionInfo
}
