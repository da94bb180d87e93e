package v1

import (
	"github.com/shenikar/city_safety_map/internal/catalog"
	"github.com/shenikar/city_safety_map/internal/models"
)

func dtoToSignals(dto *SignalsRequest) models.Signals {
	if dto == nil {
		return models.Signals{}
	}
	return models.Signals{
		Lighting:     dto.Lighting,
		CrowdDensity: dto.CrowdDensity,
		Incidents24h: dto.Incidents24h,
		Sentiment:    dto.Sentiment,
		WeatherRisk:  dto.WeatherRisk,
		PoliceNearby: dto.PoliceNearby,
		NightFactor:  dto.NightFactor,
	}
}

// DTOToRegionModel преобразует запрос на создание в доменную модель.
// Без явной оценки район получает базовую оценку каталога.
func DTOToRegionModel(dto CreateRegionRequest) *models.Region {
	score := catalog.BaseScore(dto.Name)
	if dto.SafetyScore != nil {
		score = *dto.SafetyScore
	}
	return &models.Region{
		Name:        dto.Name,
		Latitude:    *dto.Latitude,
		Longitude:   *dto.Longitude,
		SafetyScore: score,
		Signals:     dtoToSignals(dto.Signals),
	}
}

// DTOToRegionUpdate преобразует запрос на частичное обновление
func DTOToRegionUpdate(dto UpdateRegionRequest) models.RegionUpdate {
	upd := models.RegionUpdate{
		Name:        dto.Name,
		Latitude:    dto.Latitude,
		Longitude:   dto.Longitude,
		SafetyScore: dto.SafetyScore,
	}
	if dto.Signals != nil {
		signals := dtoToSignals(dto.Signals)
		upd.Signals = &signals
	}
	return upd
}

// ModelToRegionResponse преобразует доменную модель в DTO для ответа
func ModelToRegionResponse(model *models.Region) *RegionResponse {
	return &RegionResponse{
		ID:           model.ID,
		Name:         model.Name,
		Latitude:     model.Latitude,
		Longitude:    model.Longitude,
		SafetyScore:  model.SafetyScore,
		Tier:         string(model.Tier()),
		Lighting:     model.Lighting,
		CrowdDensity: model.CrowdDensity,
		Incidents24h: model.Incidents24h,
		Sentiment:    model.Sentiment,
		WeatherRisk:  model.WeatherRisk,
		PoliceNearby: model.PoliceNearby,
		NightFactor:  model.NightFactor,
		LastUpdated:  model.LastUpdated,
	}
}

func ModelsToRegionResponses(models []*models.Region) []*RegionResponse {
	responses := make([]*RegionResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToRegionResponse(model)
	}
	return responses
}

func ModelToRegionStatsResponse(stats *models.RegionStats) *RegionStatsResponse {
	byTier := make(map[string]int, len(stats.ByTier))
	for tier, n := range stats.ByTier {
		byTier[string(tier)] = n
	}
	return &RegionStatsResponse{
		Total:        stats.Total,
		AverageScore: stats.AverageScore,
		ByTier:       byTier,
		LastUpdated:  stats.LastUpdated,
	}
}

func DTOToAlertModel(dto CreateAlertRequest) *models.Alert {
	return &models.Alert{
		RegionID: dto.RegionID,
		Severity: models.Severity(dto.Severity),
		Message:  dto.Message,
	}
}

func ModelToAlertResponse(model *models.Alert) *AlertResponse {
	return &AlertResponse{
		ID:        model.ID,
		RegionID:  model.RegionID,
		Severity:  string(model.Severity),
		Message:   model.Message,
		Timestamp: model.Timestamp,
	}
}

func ModelsToAlertResponses(models []*models.Alert) []*AlertResponse {
	responses := make([]*AlertResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToAlertResponse(model)
	}
	return responses
}

// DTOToUserReportModel преобразует отчет. Отсутствующие координаты остаются нулевыми,
// сервис подставит центр города.
func DTOToUserReportModel(dto CreateUserReportRequest) *models.UserReport {
	report := &models.UserReport{
		Location:    dto.Location,
		Category:    models.ReportCategory(dto.Category),
		Description: dto.Description,
	}
	if dto.Latitude != nil && dto.Longitude != nil {
		report.Latitude = *dto.Latitude
		report.Longitude = *dto.Longitude
	}
	return report
}

func ModelToUserReportResponse(model *models.UserReport) *UserReportResponse {
	return &UserReportResponse{
		ID:          model.ID,
		Location:    model.Location,
		Latitude:    model.Latitude,
		Longitude:   model.Longitude,
		Category:    string(model.Category),
		Description: model.Description,
		Timestamp:   model.Timestamp,
	}
}

func ModelsToUserReportResponses(models []*models.UserReport) []*UserReportResponse {
	responses := make([]*UserReportResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToUserReportResponse(model)
	}
	return responses
}

func ModelToRouteResponse(model *models.Route) *RouteResponse {
	return &RouteResponse{
		ID:                 model.ID,
		Source:             model.Source,
		Destination:        model.Destination,
		SourceCoord:        model.SourceCoord,
		DestinationCoord:   model.DestinationCoord,
		AverageSafetyScore: model.AverageSafetyScore,
		Tier:               string(models.TierFor(model.AverageSafetyScore)),
		DistanceKm:         model.DistanceKm,
		EstimatedMinutes:   model.EstimatedMinutes,
		Waypoints:          model.Waypoints,
		CreatedAt:          model.CreatedAt,
	}
}

func ModelsToRouteResponses(routes []*models.Route) []*RouteResponse {
	responses := make([]*RouteResponse, len(routes))
	for i, route := range routes {
		responses[i] = ModelToRouteResponse(route)
	}
	return responses
}
