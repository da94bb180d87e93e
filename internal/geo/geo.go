// Package geo содержит геометрию, нужную для оценки маршрутов
package geo

import (
	"math"

	"github.com/shenikar/city_safety_map/internal/models"
)

// EarthRadiusKm - средний радиус Земли
const EarthRadiusKm = 6371.0

// Haversine возвращает расстояние по дуге большого круга в километрах
func Haversine(a, b models.Coordinate) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// EuclideanDegrees - плоское расстояние в градусах.
// Годится только для ранжирования близких точек, не для измерений.
func EuclideanDegrees(a, b models.Coordinate) float64 {
	return math.Hypot(a.Lat-b.Lat, a.Lng-b.Lng)
}

// Interpolate возвращает точку на отрезке a-b, t из [0, 1]
func Interpolate(a, b models.Coordinate, t float64) models.Coordinate {
	return models.Coordinate{
		Lat: a.Lat + (b.Lat-a.Lat)*t,
		Lng: a.Lng + (b.Lng-a.Lng)*t,
	}
}

// Waypoints делит отрезок a-b на segments частей и возвращает segments+1 точек,
// включая концы
func Waypoints(a, b models.Coordinate, segments int) []models.Coordinate {
	if segments < 1 {
		segments = 1
	}
	points := make([]models.Coordinate, 0, segments+1)
	points = append(points, a)
	for i := 1; i < segments; i++ {
		points = append(points, Interpolate(a, b, float64(i)/float64(segments)))
	}
	return append(points, b)
}

// Jitter смещает точку на (u-0.5)*span по каждой оси, где u берется из rnd
func Jitter(c models.Coordinate, span float64, rnd func() float64) models.Coordinate {
	return models.Coordinate{
		Lat: c.Lat + (rnd()-0.5)*span,
		Lng: c.Lng + (rnd()-0.5)*span,
	}
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
