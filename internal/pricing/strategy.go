package pricing

import (
	"time"

	"github.com/m04kA/SMC-SessionsService/internal/domain"
)

// Strategy стратегия динамической корректировки цены.
// Вынесена в интерфейс, чтобы множитель (пиковые часы, спрос)
// можно было подменять и тестировать отдельно от линейного
// масштабирования по длительности
type Strategy interface {
	// Multiplier возвращает множитель цены на момент at.
	// Для фиксированного at результат детерминирован
	Multiplier(at time.Time) float64
}

// FlatStrategy стратегия без динамической корректировки (множитель 1.0).
// Используется по умолчанию, когда у провайдера нет правил ценообразования
type FlatStrategy struct{}

// Multiplier всегда возвращает 1.0
func (FlatStrategy) Multiplier(_ time.Time) float64 {
	return 1.0
}

// PeakHoursStrategy стратегия наценки в часы пиковой нагрузки.
// Вне пикового окна возвращает базовый множитель 1.0
type PeakHoursStrategy struct {
	rule domain.PricingRule
}

// NewPeakHoursStrategy создает стратегию по правилу ценообразования
func NewPeakHoursStrategy(rule domain.PricingRule) PeakHoursStrategy {
	return PeakHoursStrategy{rule: rule}
}

// Multiplier возвращает пиковый множитель, если at попадает в пиковое окно
func (s PeakHoursStrategy) Multiplier(at time.Time) float64 {
	if s.rule.AppliesAt(at) {
		return s.rule.PeakMultiplier
	}
	return 1.0
}

// StrategyForRule возвращает стратегию для найденного правила.
// nil правило - корректировки нет
func StrategyForRule(rule *domain.PricingRule) Strategy {
	if rule == nil {
		return FlatStrategy{}
	}
	return NewPeakHoursStrategy(*rule)
}
