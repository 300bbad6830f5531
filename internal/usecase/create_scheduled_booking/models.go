package create_scheduled_booking

import "time"

// Request модель запроса на создание запланированной заявки
type Request struct {
	ClientID        int64     // ID клиента
	ServiceID       int64     // ID услуги
	RequestedTime   time.Time // Желаемое время начала сессии
	DurationMinutes int       // Запрошенная длительность сессии
	Notes           *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID              int64      // ID созданной заявки
	ClientID        int64      // ID клиента
	ProviderID      int64      // ID провайдера (из каталога)
	ServiceID       int64      // ID услуги
	IsInstant       bool       // Всегда false для запланированных заявок
	RequestedTime   *time.Time // Желаемое время начала
	DurationMinutes int        // Длительность в минутах
	Price           float64    // Зафиксированная цена
	DisplayPrice    float64    // Цена, округлённая для отображения
	Status          string     // Статус заявки

	// Денормализованные данные
	ServiceName string  // Название услуги
	Notes       *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
