package create_instant_booking

import "time"

// Request модель запроса на создание мгновенной заявки
type Request struct {
	ClientID        int64   // ID клиента
	ServiceID       int64   // ID услуги
	DurationMinutes int     // Запрошенная длительность сессии
	Notes           *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID              int64   // ID созданной заявки
	ClientID        int64   // ID клиента
	ProviderID      int64   // ID провайдера (из каталога)
	ServiceID       int64   // ID услуги
	IsInstant       bool    // Всегда true для мгновенных заявок
	DurationMinutes int     // Длительность в минутах
	Price           float64 // Зафиксированная цена
	DisplayPrice    float64 // Цена, округлённая для отображения
	Status          string  // Статус заявки

	// Денормализованные данные
	ServiceName string  // Название услуги
	Notes       *string // Заметки

	ExpiresAt *time.Time // Дедлайн ответа провайдера
	CreatedAt time.Time  // Время создания
	UpdatedAt time.Time  // Время обновления
}
