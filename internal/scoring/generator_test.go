package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenikar/city_safety_map/internal/models"
	"github.com/shenikar/city_safety_map/internal/random"
)

func fixedClock(hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2024, 3, 1, hour, 15, 0, 0, time.UTC)
	}
}

func assertSignalRanges(t *testing.T, s models.Signals) {
	t.Helper()
	assert.GreaterOrEqual(t, s.Lighting, 0)
	assert.LessOrEqual(t, s.Lighting, 100)
	assert.GreaterOrEqual(t, s.CrowdDensity, 0)
	assert.LessOrEqual(t, s.CrowdDensity, 100)
	assert.GreaterOrEqual(t, s.Incidents24h, 0)
	assert.GreaterOrEqual(t, s.Sentiment, -1.0)
	assert.LessOrEqual(t, s.Sentiment, 1.0)
	assert.GreaterOrEqual(t, s.WeatherRisk, 0.0)
	assert.LessOrEqual(t, s.WeatherRisk, 1.0)
	assert.GreaterOrEqual(t, s.NightFactor, 0.0)
	assert.LessOrEqual(t, s.NightFactor, 1.0)
}

func TestGenerator_RangesForAnyBase(t *testing.T) {
	gen := NewGenerator(random.New(3), fixedClock(12))

	for _, base := range []int{-50, 0, 20, 40, 60, 61, 85, 100, 250} {
		for i := 0; i < 200; i++ {
			assertSignalRanges(t, gen.Generate(base))
		}
	}
}

func TestGenerator_HighBaseBiasesUp(t *testing.T) {
	// Подготовка: все случайные значения равны 0.5, variance = 0
	gen := NewGenerator(random.NewSequence(0.5), fixedClock(12))

	// Действие
	high := gen.Generate(90)
	low := gen.Generate(30)

	// Проверки
	assert.Equal(t, 80, high.Lighting)
	assert.Equal(t, 35, high.CrowdDensity)
	assert.Equal(t, 1, high.Incidents24h)
	assert.Equal(t, 0.65, high.Sentiment)
	assert.True(t, high.PoliceNearby)

	assert.Equal(t, 50, low.Lighting)
	assert.Equal(t, 18, low.CrowdDensity)
	assert.Equal(t, 3, low.Incidents24h)
	assert.Equal(t, -0.1, low.Sentiment)
	assert.False(t, low.PoliceNearby)

	assert.Greater(t, Compute(high, DefaultPrevious), Compute(low, DefaultPrevious))
}

func TestGenerator_NightFactor(t *testing.T) {
	tests := []struct {
		name  string
		hour  int
		night bool
	}{
		{"evening start", 20, true},
		{"midnight", 0, true},
		{"before dawn", 5, true},
		{"dawn", 6, false},
		{"noon", 12, false},
		{"late afternoon", 19, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(random.NewSequence(0.99), fixedClock(tt.hour))
			s := gen.Generate(70)

			require.Equal(t, tt.night, IsNight(fixedClock(tt.hour)()))
			if tt.night {
				assert.GreaterOrEqual(t, s.NightFactor, 0.3)
				assert.LessOrEqual(t, s.NightFactor, 0.7)
			} else {
				assert.LessOrEqual(t, s.NightFactor, 0.2)
			}
		})
	}
}

func TestGenerator_TwoDecimalFloats(t *testing.T) {
	gen := NewGenerator(random.New(99), fixedClock(22))

	for i := 0; i < 100; i++ {
		s := gen.Generate(65)
		assert.Equal(t, Round2(s.Sentiment), s.Sentiment)
		assert.Equal(t, Round2(s.WeatherRisk), s.WeatherRisk)
		assert.Equal(t, Round2(s.NightFactor), s.NightFactor)
	}
}
