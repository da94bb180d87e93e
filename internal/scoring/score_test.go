package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shenikar/city_safety_map/internal/models"
	"github.com/shenikar/city_safety_map/internal/random"
)

func TestCompute_PerfectSignals(t *testing.T) {
	s := models.Signals{
		Lighting:     100,
		CrowdDensity: 50,
		Incidents24h: 0,
		Sentiment:    1,
		WeatherRisk:  0,
		PoliceNearby: true,
		NightFactor:  0,
	}

	assert.InDelta(t, 100.0, Raw(s), 1e-9)
	assert.Equal(t, 100.0, Compute(s, 100))
	assert.Equal(t, 91.0, Compute(s, DefaultPrevious))
}

func TestCompute_WorstSignals(t *testing.T) {
	s := models.Signals{
		Lighting:     0,
		CrowdDensity: 0,
		Incidents24h: 10,
		Sentiment:    -1,
		WeatherRisk:  1,
		PoliceNearby: false,
		NightFactor:  1,
	}

	// Остается только вклад полиции: 0.05 * 0.7 * 100 = 3.5
	assert.InDelta(t, 3.5, Raw(s), 1e-9)
	assert.Equal(t, 2.45, Compute(s, 0))
}

func TestCompute_CrowdAboveFiftyDoesNotHelp(t *testing.T) {
	a := models.Signals{Lighting: 50, CrowdDensity: 50, Sentiment: 0}
	b := a
	b.CrowdDensity = 100

	assert.Equal(t, Compute(a, 70), Compute(b, 70))
}

func TestCompute_IncidentsSaturateAtTen(t *testing.T) {
	a := models.Signals{Lighting: 50, Incidents24h: 10}
	b := a
	b.Incidents24h = 25

	assert.Equal(t, Compute(a, 70), Compute(b, 70))
}

func TestCompute_RoundsToTwoDecimals(t *testing.T) {
	s := models.Signals{Lighting: 33, CrowdDensity: 17, Incidents24h: 3, Sentiment: 0.13, WeatherRisk: 0.07, NightFactor: 0.11}

	got := Compute(s, 61)
	assert.Equal(t, Round2(got), got)
}

func TestCompute_FixedPointIsStable(t *testing.T) {
	s := models.Signals{Lighting: 80, CrowdDensity: 40, Incidents24h: 1, Sentiment: 0.5, WeatherRisk: 0.1, PoliceNearby: true, NightFactor: 0.1}

	raw := Round2(Raw(s))
	// Если предыдущая оценка равна сырой, сглаживание ничего не меняет
	assert.InDelta(t, raw, Compute(s, raw), 0.01)
}

func TestStoredScore(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int
	}{
		{"rounds half up", 69.5, 70},
		{"rounds down", 39.49, 39},
		{"clamps below zero", -3, 0},
		{"clamps above hundred", 100.7, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StoredScore(tt.in))
		})
	}
}

func TestCompute_GeneratedSignalsStayInRange(t *testing.T) {
	gen := NewGenerator(random.New(11), time.Now)
	prev := DefaultPrevious

	for i := 0; i < 500; i++ {
		base := i % 101
		score := Compute(gen.Generate(base), prev)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
		prev = score
	}
}
