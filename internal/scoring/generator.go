package scoring

import (
	"math"
	"time"

	"github.com/shenikar/city_safety_map/internal/models"
	"github.com/shenikar/city_safety_map/internal/random"
)

const (
	// Порог, выше которого сигналы смещаются в "безопасную" сторону
	safeBias = 60
	// Порог для вероятности присутствия полиции
	policeBias = 50

	minTarget = 20
	maxTarget = 100

	nightStartHour = 20
	nightEndHour   = 6
)

// Generator генерирует синтетические сигналы, смещенные к базовой оценке района
type Generator struct {
	rnd random.Source
	now func() time.Time
}

func NewGenerator(rnd random.Source, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{rnd: rnd, now: now}
}

// Generate возвращает сигналы для района с базовой оценкой base.
// Все поля лежат в своих диапазонах независимо от значения base.
func (g *Generator) Generate(base int) models.Signals {
	variance := (g.rnd.Float64() - 0.5) * 20
	target := math.Max(minTarget, math.Min(maxTarget, float64(base)+variance))

	var nightFactor float64
	if IsNight(g.now()) {
		nightFactor = 0.3 + g.rnd.Float64()*0.4
	} else {
		nightFactor = g.rnd.Float64() * 0.2
	}

	var s models.Signals
	if target > safeBias {
		s.Lighting = int(math.Round(60 + g.rnd.Float64()*40))
		s.CrowdDensity = int(math.Round(20 + g.rnd.Float64()*30))
		s.Incidents24h = g.rnd.IntN(3)
		s.Sentiment = 0.3 + g.rnd.Float64()*0.7
	} else {
		s.Lighting = int(math.Round(30 + g.rnd.Float64()*40))
		s.CrowdDensity = int(math.Round(5 + g.rnd.Float64()*25))
		s.Incidents24h = g.rnd.IntN(7)
		s.Sentiment = -0.5 + g.rnd.Float64()*0.8
	}
	s.WeatherRisk = g.rnd.Float64() * 0.3

	if target > policeBias {
		s.PoliceNearby = g.rnd.Float64() > 0.3
	} else {
		s.PoliceNearby = g.rnd.Float64() > 0.7
	}
	s.NightFactor = nightFactor

	s.Sentiment = Round2(s.Sentiment)
	s.WeatherRisk = Round2(s.WeatherRisk)
	s.NightFactor = Round2(s.NightFactor)
	return s
}

// IsNight сообщает, попадает ли время в ночное окно 20:00-06:00 (по локальному времени t)
func IsNight(t time.Time) bool {
	h := t.Hour()
	return h >= nightStartHour || h < nightEndHour
}
