package domain

import "time"

// BookingStatus represents the status of a booking request
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusAccepted  BookingStatus = "accepted"
	StatusDeclined  BookingStatus = "declined"
	StatusExpired   BookingStatus = "expired"
	StatusCompleted BookingStatus = "completed"
)

// BookingRequest заявка на сессию: мгновенная (isInstant) или запланированная.
// Цена фиксируется при создании и никогда не пересчитывается
type BookingRequest struct {
	ID         int64
	ClientID   int64
	ProviderID int64 // денормализован из каталога при создании, нужен для проверки прав при ответе
	ServiceID  int64

	IsInstant       bool
	RequestedTime   *time.Time // nil для мгновенных заявок
	DurationMinutes int
	Price           float64
	Status          BookingStatus

	// Denormalized data for history
	ServiceName string
	Notes       *string

	RespondedAt *time.Time
	ExpiresAt   *time.Time // только для мгновенных заявок: createdAt + 30 минут

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the booking request reached a terminal status
func (b *BookingRequest) IsTerminal() bool {
	return b.Status != StatusPending
}

// CanRespond returns true if the provider can still accept or decline
func (b *BookingRequest) CanRespond() bool {
	return b.Status == StatusPending
}

// AcceptedDeadline возвращает дедлайн подключения для принятой мгновенной заявки:
// respondedAt + max(respondedAt - createdAt, 5 минут).
// Быстрое принятие укорачивает ожидание, но клиенту и провайдеру
// гарантируется минимум 5 минут на подключение.
// Для запланированных и неотвеченных заявок возвращает nil
func (b *BookingRequest) AcceptedDeadline() *time.Time {
	if !b.IsInstant || b.Status != StatusAccepted || b.RespondedAt == nil {
		return nil
	}

	countdown := b.RespondedAt.Sub(b.CreatedAt)
	if countdown < MinAcceptedWindow {
		countdown = MinAcceptedWindow
	}

	deadline := b.RespondedAt.Add(countdown)
	return &deadline
}

// IsExpired returns true if the instant request's window has lapsed at the given time.
// Истечение - производное свойство: таймеры на сервере не заводятся,
// читатели вычисляют его по now и лениво фиксируют в хранилище
func (b *BookingRequest) IsExpired(now time.Time) bool {
	if !b.IsInstant {
		return false
	}

	switch b.Status {
	case StatusPending:
		return b.ExpiresAt != nil && now.After(*b.ExpiresAt)
	case StatusAccepted:
		deadline := b.AcceptedDeadline()
		return deadline != nil && now.After(*deadline)
	default:
		return false
	}
}

// EffectiveStatus возвращает статус с учётом производного истечения.
// Именно этот статус видят читатели, даже если ленивая запись ещё не прошла
func (b *BookingRequest) EffectiveStatus(now time.Time) BookingStatus {
	if b.IsExpired(now) {
		return StatusExpired
	}
	return b.Status
}

// ProviderBookingsFilter фильтр для получения заявок провайдера
type ProviderBookingsFilter struct {
	ProviderID      int64          // Обязательный параметр
	ServiceID       *int64         // Фильтр по услуге (опционально)
	StartDate       *time.Time     // Начало периода по created_at (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	OnlyPending     bool           // Только заявки, ожидающие ответа
	IncludeInactive bool           // Включать ли отклонённые и истёкшие заявки
}
