package pricing

import (
	"fmt"
	"math"
	"time"
)

// Calculator калькулятор стоимости сессии.
// Чистая функция над входами: без I/O, без разделяемого состояния,
// безопасен для конкурентного использования
type Calculator struct {
	strategy Strategy
}

// NewCalculator создает калькулятор с заданной стратегией.
// nil стратегия означает отсутствие динамической корректировки
func NewCalculator(strategy Strategy) *Calculator {
	if strategy == nil {
		strategy = FlatStrategy{}
	}
	return &Calculator{strategy: strategy}
}

// Quote вычисляет стоимость сессии запрошенной длительности.
//
// Базовая цена услуги задана за baseDurationMinutes; из неё выводится
// поминутная ставка, которая масштабируется на запрошенную длительность
// и корректируется множителем стратегии на момент now.
//
// Котировка валидна только в момент вычисления: перед подтверждением
// бронирования она запрашивается заново, а не берётся из кэша.
// Возвращаемое значение не округляется - округление происходит
// только при отображении (RoundDisplay)
func (c *Calculator) Quote(basePrice float64, baseDurationMinutes, requestedDurationMinutes int, now time.Time) (float64, error) {
	if basePrice < 0 {
		return 0, fmt.Errorf("%w: base price must be non-negative, got %f", ErrInvalidInput, basePrice)
	}
	if baseDurationMinutes <= 0 {
		return 0, fmt.Errorf("%w: base duration must be positive, got %d", ErrInvalidInput, baseDurationMinutes)
	}
	if requestedDurationMinutes <= 0 {
		return 0, fmt.Errorf("%w: requested duration must be positive, got %d", ErrInvalidInput, requestedDurationMinutes)
	}

	perMinuteRate := basePrice / float64(baseDurationMinutes)
	quote := perMinuteRate * float64(requestedDurationMinutes)

	return quote * c.strategy.Multiplier(now), nil
}

// RoundDisplay округляет сумму до 2 знаков для отображения.
// В хранилище всегда попадает неокруглённое значение
func RoundDisplay(v float64) float64 {
	return math.Round(v*100) / 100
}
