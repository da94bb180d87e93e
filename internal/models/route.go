package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Coordinate - точка на карте. В JSON кодируется как [lat, lng].
type Coordinate struct {
	Lat float64
	Lng float64
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lng})
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinate must be [lat, lng]: %w", err)
	}
	c.Lat, c.Lng = pair[0], pair[1]
	return nil
}

// Route - маршрут между двумя точками с оценкой безопасности
type Route struct {
	ID                 uuid.UUID    `json:"id"`
	Source             string       `json:"source"`
	Destination        string       `json:"destination"`
	SourceCoord        Coordinate   `json:"source_coord"`
	DestinationCoord   Coordinate   `json:"destination_coord"`
	AverageSafetyScore int          `json:"average_safety_score"`
	DistanceKm         float64      `json:"distance_km"`
	EstimatedMinutes   int          `json:"estimated_minutes"`
	Waypoints          []Coordinate `json:"waypoints"`
	CreatedAt          time.Time    `json:"created_at"`
}
