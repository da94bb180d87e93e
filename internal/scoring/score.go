// Package scoring считает оценку безопасности района по взвешенным сигналам
// и генерирует синтетические сигналы для симуляции.
package scoring

import (
	"math"

	"github.com/shenikar/city_safety_map/internal/models"
)

// DefaultPrevious - якорь сглаживания для района, у которого еще нет оценки
const DefaultPrevious = 70.0

// Веса сигналов, в сумме 1.0
const (
	weightLighting  = 0.20
	weightCrowd     = 0.15
	weightIncidents = 0.25
	weightSentiment = 0.15
	weightWeather   = 0.10
	weightPolice    = 0.05
	weightNight     = 0.10

	// Доля нового значения при сглаживании
	smoothing = 0.7
)

// Raw возвращает взвешенную оценку 0-100 без сглаживания и округления.
// Входные значения не клипуются: за корректные диапазоны отвечает вызывающий.
func Raw(s models.Signals) float64 {
	lighting := math.Min(float64(s.Lighting)/100, 1)
	crowd := math.Min(float64(s.CrowdDensity)/50, 1)
	incidents := 1 - math.Min(float64(s.Incidents24h)/10, 1)
	sentiment := (s.Sentiment + 1) / 2
	weather := 1 - s.WeatherRisk
	police := 0.7
	if s.PoliceNearby {
		police = 1.0
	}
	night := 1 - s.NightFactor

	return 100 * (weightLighting*lighting +
		weightCrowd*crowd +
		weightIncidents*incidents +
		weightSentiment*sentiment +
		weightWeather*weather +
		weightPolice*police +
		weightNight*night)
}

// Compute считает новую оценку: взвешенная сумма сигналов, сглаженная с предыдущей
// оценкой (0.7 новое + 0.3 старое), округленная до двух знаков.
func Compute(s models.Signals, previous float64) float64 {
	final := smoothing*Raw(s) + (1-smoothing)*previous
	return Round2(final)
}

// StoredScore переводит оценку в целое значение для хранения в районе, в пределах [0, 100]
func StoredScore(score float64) int {
	return ClampScore(int(math.Round(score)))
}

func ClampScore(score int) int {
	if score < models.MinSafetyScore {
		return models.MinSafetyScore
	}
	if score > models.MaxSafetyScore {
		return models.MaxSafetyScore
	}
	return score
}

// Round2 округляет до двух знаков после запятой
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
