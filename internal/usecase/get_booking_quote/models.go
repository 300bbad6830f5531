package get_booking_quote

import "time"

// Request модель запроса котировки
type Request struct {
	ServiceID       int64 // ID услуги из каталога
	DurationMinutes int   // Запрошенная длительность сессии
}

// Response модель ответа с котировкой.
// Котировка валидна только в момент вычисления: при подтверждении
// бронирования цена считается заново, а не берётся из этого ответа.
// QuoteID связывает строку лога котировки с последующим бронированием
type Response struct {
	QuoteID         string    // Корреляционный UUID котировки
	ServiceID       int64     // ID услуги
	ProviderID      int64     // ID провайдера услуги
	ServiceName     string    // Название услуги
	DurationMinutes int       // Запрошенная длительность
	Price           float64   // Неокруглённая стоимость
	DisplayPrice    float64   // Стоимость, округлённая до 2 знаков для отображения
	ComputedAt      time.Time // Момент вычисления котировки
}
