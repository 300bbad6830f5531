package domain

import "time"

// PricingRule правило динамического ценообразования провайдера.
// Поддерживает двухуровневую иерархию:
// 1. Правило для конкретной услуги (provider_id, service_id)
// 2. Правило провайдера целиком (provider_id, NULL)
type PricingRule struct {
	ID         int64
	ProviderID int64
	ServiceID  *int64 // NULL = правило для всех услуг провайдера

	// Множитель применяется к базовой поминутной ставке
	// в часы пиковой нагрузки [PeakStartHour, PeakEndHour)
	PeakMultiplier float64
	PeakStartHour  int // 0-23
	PeakEndHour    int // 1-24, строго больше PeakStartHour

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsProviderWide returns true if the rule applies to all provider services
func (r *PricingRule) IsProviderWide() bool {
	return r.ServiceID == nil
}

// AppliesAt returns true if the peak window covers the given time
func (r *PricingRule) AppliesAt(at time.Time) bool {
	h := at.Hour()
	return h >= r.PeakStartHour && h < r.PeakEndHour
}
