// Package alerting генерирует алерты по уровню риска района
package alerting

import (
	"strings"

	"github.com/shenikar/city_safety_map/internal/models"
	"github.com/shenikar/city_safety_map/internal/random"
)

const areaPlaceholder = "{area}"

var templates = map[models.Severity][]string{
	models.SeverityCritical: {
		"Major incident detected near {area} - high police activity reported",
		"Safety alert: Avoid {area} - critical incident in progress",
		"Emergency response active in {area} - seek alternate routes",
	},
	models.SeverityWarning: {
		"Incident detected near {area} - low lighting and sparse crowd",
		"Safety concern in {area} - multiple incidents reported in last hour",
		"Increased crowd density in {area} - exercise caution",
		"Poor lighting conditions reported in {area}",
	},
	models.SeverityInfo: {
		"Heavy rainfall affecting visibility in {area}",
		"Increased police presence in {area} - routine patrol",
		"Traffic congestion in {area} may affect safety perception",
	},
}

// Generator выбирает важность и текст алерта. Сам алерт не сохраняет.
type Generator struct {
	rnd random.Source
}

func NewGenerator(rnd random.Source) *Generator {
	return &Generator{rnd: rnd}
}

// Classify выбирает важность по оценке района:
// ниже 40 - critical или warning, ниже 70 - warning или info, иначе info.
func (g *Generator) Classify(score int) models.Severity {
	switch {
	case score < 40:
		if g.rnd.Float64() > 0.5 {
			return models.SeverityCritical
		}
		return models.SeverityWarning
	case score < 70:
		if g.rnd.Float64() > 0.3 {
			return models.SeverityWarning
		}
		return models.SeverityInfo
	default:
		return models.SeverityInfo
	}
}

// Message подставляет название района в случайный шаблон для важности sev
func (g *Generator) Message(sev models.Severity, area string) string {
	list, ok := templates[sev]
	if !ok || len(list) == 0 {
		list = templates[models.SeverityInfo]
	}
	return strings.ReplaceAll(list[g.rnd.IntN(len(list))], areaPlaceholder, area)
}

// ForRegion собирает алерт для района. ID и время проставляет AlertService.
func (g *Generator) ForRegion(region *models.Region) *models.Alert {
	sev := g.Classify(region.SafetyScore)
	return &models.Alert{
		RegionID: region.ID.String(),
		Severity: sev,
		Message:  g.Message(sev, region.Name),
	}
}
