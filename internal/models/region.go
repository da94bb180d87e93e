package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinSafetyScore = 0
	MaxSafetyScore = 100
)

// Signals - набор сырых сигналов, из которых считается оценка безопасности района
type Signals struct {
	Lighting     int     `json:"lighting"`      // 0-100
	CrowdDensity int     `json:"crowd_density"` // 0-100
	Incidents24h int     `json:"incidents_24h"` // >= 0
	Sentiment    float64 `json:"sentiment"`     // -1..1
	WeatherRisk  float64 `json:"weather_risk"`  // 0..1
	PoliceNearby bool    `json:"police_nearby"`
	NightFactor  float64 `json:"night_factor"` // 0..1
}

// Region представляет район города с текущей оценкой безопасности
type Region struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	SafetyScore int       `json:"safety_score"`
	Signals
	LastUpdated time.Time `json:"last_updated"`
}

// Coordinate возвращает координату центра района
func (r *Region) Coordinate() Coordinate {
	return Coordinate{Lat: r.Latitude, Lng: r.Longitude}
}

// Tier возвращает уровень риска района по текущей оценке
func (r *Region) Tier() RiskTier {
	return TierFor(r.SafetyScore)
}

// RegionUpdate - частичное обновление района. nil означает "не менять".
// Signals заменяются целиком, чтобы читатель никогда не увидел смесь двух поколений сигналов.
type RegionUpdate struct {
	Name        *string
	Latitude    *float64
	Longitude   *float64
	SafetyScore *int
	Signals     *Signals
}

// IsEmpty сообщает, что обновление не содержит ни одного поля
func (u RegionUpdate) IsEmpty() bool {
	return u.Name == nil && u.Latitude == nil && u.Longitude == nil && u.SafetyScore == nil && u.Signals == nil
}

// RiskTier - уровень риска, как на легенде карты
type RiskTier string

const (
	RiskTierSafe     RiskTier = "safe"
	RiskTierModerate RiskTier = "moderate"
	RiskTierUnsafe   RiskTier = "unsafe"
)

func TierFor(score int) RiskTier {
	switch {
	case score >= 70:
		return RiskTierSafe
	case score >= 40:
		return RiskTierModerate
	default:
		return RiskTierUnsafe
	}
}

// RegionStats - сводка по всем районам
type RegionStats struct {
	Total        int              `json:"total"`
	AverageScore float64          `json:"average_score"`
	ByTier       map[RiskTier]int `json:"by_tier"`
	LastUpdated  time.Time        `json:"last_updated"`
}
