package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/city_safety_map/internal/models"
)

// SignalsRequest DTO с сырыми сигналами района
// @Description DTO с сырыми сигналами района
type SignalsRequest struct {
	Lighting     int     `json:"lighting" validate:"min=0,max=100"`
	CrowdDensity int     `json:"crowd_density" validate:"min=0,max=100"`
	Incidents24h int     `json:"incidents_24h" validate:"min=0"`
	Sentiment    float64 `json:"sentiment" validate:"min=-1,max=1"`
	WeatherRisk  float64 `json:"weather_risk" validate:"min=0,max=1"`
	PoliceNearby bool    `json:"police_nearby"`
	NightFactor  float64 `json:"night_factor" validate:"min=0,max=1"`
}

// CreateRegionRequest DTO для создания района
// @Description DTO для создания района
type CreateRegionRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=255"`
	Latitude    *float64        `json:"latitude" validate:"required,latitude"`
	Longitude   *float64        `json:"longitude" validate:"required,longitude"`
	SafetyScore *int            `json:"safety_score,omitempty" validate:"omitempty,min=0,max=100"`
	Signals     *SignalsRequest `json:"signals,omitempty"`
}

// UpdateRegionRequest DTO для частичного обновления района. Отсутствующие поля не меняются.
// @Description DTO для частичного обновления района
type UpdateRegionRequest struct {
	Name        *string         `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Latitude    *float64        `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude   *float64        `json:"longitude,omitempty" validate:"omitempty,longitude"`
	SafetyScore *int            `json:"safety_score,omitempty" validate:"omitempty,min=0,max=100"`
	Signals     *SignalsRequest `json:"signals,omitempty"`
}

// RegionResponse DTO для ответа с информацией о районе
// @Description DTO для ответа с информацией о районе
type RegionResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	SafetyScore  int       `json:"safety_score"`
	Tier         string    `json:"tier"`
	Lighting     int       `json:"lighting"`
	CrowdDensity int       `json:"crowd_density"`
	Incidents24h int       `json:"incidents_24h"`
	Sentiment    float64   `json:"sentiment"`
	WeatherRisk  float64   `json:"weather_risk"`
	PoliceNearby bool      `json:"police_nearby"`
	NightFactor  float64   `json:"night_factor"`
	LastUpdated  time.Time `json:"last_updated"`
}

// HeatmapResponse DTO со снимком всех районов
// @Description DTO со снимком всех районов
type HeatmapResponse struct {
	Regions   []*RegionResponse `json:"regions"`
	Timestamp time.Time         `json:"timestamp"`
}

// RegionStatsResponse DTO со сводкой по районам
// @Description DTO со сводкой по районам
type RegionStatsResponse struct {
	Total        int            `json:"total"`
	AverageScore float64        `json:"average_score"`
	ByTier       map[string]int `json:"by_tier"`
	LastUpdated  time.Time      `json:"last_updated"`
}

// CreateAlertRequest DTO для ручного создания алерта
// @Description DTO для ручного создания алерта
type CreateAlertRequest struct {
	RegionID string `json:"region_id" validate:"required,max=64"`
	Severity string `json:"severity" validate:"required,oneof=critical warning info"`
	Message  string `json:"message" validate:"required,min=1,max=500"`
}

// AlertResponse DTO для ответа с алертом
// @Description DTO для ответа с алертом
type AlertResponse struct {
	ID        uuid.UUID `json:"id"`
	RegionID  string    `json:"region_id"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// PruneAlertsResponse DTO с количеством удаленных алертов
// @Description DTO с количеством удаленных алертов
type PruneAlertsResponse struct {
	Deleted int `json:"deleted"`
}

// CreateUserReportRequest DTO для отправки пользовательского отчета
// @Description DTO для отправки пользовательского отчета
type CreateUserReportRequest struct {
	Location    string   `json:"location" validate:"required,max=255"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Category    string   `json:"category" validate:"required,oneof=incident lighting crowd other"`
	Description string   `json:"description" validate:"required,max=2000"`
}

// UserReportResponse DTO для ответа с отчетом
// @Description DTO для ответа с отчетом
type UserReportResponse struct {
	ID          uuid.UUID `json:"id"`
	Location    string    `json:"location"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// PlanRouteRequest DTO для построения маршрута
// @Description DTO для построения маршрута
type PlanRouteRequest struct {
	Source      string `json:"source" validate:"required,max=255"`
	Destination string `json:"destination" validate:"required,max=255"`
}

// RouteResponse DTO для ответа с маршрутом. Координаты кодируются как [lat, lng].
// @Description DTO для ответа с маршрутом
type RouteResponse struct {
	ID                 uuid.UUID           `json:"id"`
	Source             string              `json:"source"`
	Destination        string              `json:"destination"`
	SourceCoord        models.Coordinate   `json:"source_coord" swaggertype:"array,number"`
	DestinationCoord   models.Coordinate   `json:"destination_coord" swaggertype:"array,number"`
	AverageSafetyScore int                 `json:"average_safety_score"`
	Tier               string              `json:"tier"`
	DistanceKm         float64             `json:"distance_km"`
	EstimatedMinutes   int                 `json:"estimated_minutes"`
	Waypoints          []models.Coordinate `json:"waypoints" swaggertype:"array,object"`
	CreatedAt          time.Time           `json:"created_at"`
}
