package v1

import "github.com/shenikar/city_safety_map/internal/models"

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry - точка GeoJSON. Порядок координат [lng, lat].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func toGeoJSON(regions []*models.Region) FeatureCollection {
	features := make([]Feature, 0, len(regions))

	for _, r := range regions {
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{r.Longitude, r.Latitude},
			},
			Properties: map[string]any{
				"id":            r.ID,
				"name":          r.Name,
				"safety_score":  r.SafetyScore,
				"tier":          string(r.Tier()),
				"lighting":      r.Lighting,
				"crowd_density": r.CrowdDensity,
				"incidents_24h": r.Incidents24h,
				"police_nearby": r.PoliceNearby,
				"last_updated":  r.LastUpdated,
			},
		})
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
