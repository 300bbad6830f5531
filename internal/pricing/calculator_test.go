package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SessionsService/internal/domain"
)

func TestQuote_ScalesLinearlyByDuration(t *testing.T) {
	calc := NewCalculator(nil)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// Половина базовой длительности стоит половину базовой цены
	price, err := calc.Quote(100.0, 60, 30, now)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, price, 1e-9)

	// Полуторная длительность
	price, err = calc.Quote(100.0, 60, 90, now)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, price, 1e-9)
}

func TestQuote_BaseDurationCostsBasePrice(t *testing.T) {
	calc := NewCalculator(nil)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	price, err := calc.Quote(199.99, 45, 45, now)
	require.NoError(t, err)
	assert.InDelta(t, 199.99, price, 1e-9)
}

func TestQuote_DeterministicForFixedTime(t *testing.T) {
	rule := domain.PricingRule{
		ProviderID:     1,
		PeakMultiplier: 1.5,
		PeakStartHour:  18,
		PeakEndHour:    22,
	}
	calc := NewCalculator(NewPeakHoursStrategy(rule))
	at := time.Date(2025, 3, 10, 19, 30, 0, 0, time.UTC)

	first, err := calc.Quote(80.0, 60, 40, at)
	require.NoError(t, err)

	second, err := calc.Quote(80.0, 60, 40, at)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestQuote_PeakMultiplierAppliedInsideWindow(t *testing.T) {
	rule := domain.PricingRule{
		ProviderID:     1,
		PeakMultiplier: 2.0,
		PeakStartHour:  18,
		PeakEndHour:    22,
	}
	calc := NewCalculator(NewPeakHoursStrategy(rule))

	peak := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	price, err := calc.Quote(100.0, 60, 60, peak)
	require.NoError(t, err)
	assert.InDelta(t, 200.0, price, 1e-9)

	// Верхняя граница окна не включается
	offPeak := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	price, err = calc.Quote(100.0, 60, 60, offPeak)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, price, 1e-9)
}

func TestQuote_InvalidInput(t *testing.T) {
	calc := NewCalculator(nil)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name              string
		basePrice         float64
		baseDuration      int
		requestedDuration int
	}{
		{"negative base price", -1.0, 60, 30},
		{"zero base duration", 100.0, 0, 30},
		{"negative base duration", 100.0, -60, 30},
		{"zero requested duration", 100.0, 60, 0},
		{"negative requested duration", 100.0, 60, -15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Quote(tt.basePrice, tt.baseDuration, tt.requestedDuration, now)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestQuote_ZeroBasePriceIsValid(t *testing.T) {
	calc := NewCalculator(nil)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	price, err := calc.Quote(0.0, 60, 90, now)
	require.NoError(t, err)
	assert.Equal(t, 0.0, price)
}

func TestRoundDisplay(t *testing.T) {
	assert.Equal(t, 33.33, RoundDisplay(100.0/3.0))
	assert.Equal(t, 66.67, RoundDisplay(200.0/3.0))
	assert.Equal(t, 50.0, RoundDisplay(50.0))
}

func TestStrategyForRule_NilRuleIsFlat(t *testing.T) {
	s := StrategyForRule(nil)
	assert.Equal(t, 1.0, s.Multiplier(time.Now()))
}
