package service

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/city_safety_map/internal/catalog"
	"github.com/shenikar/city_safety_map/internal/geo"
	"github.com/shenikar/city_safety_map/internal/models"
	"github.com/shenikar/city_safety_map/internal/random"
	"github.com/shenikar/city_safety_map/internal/scoring"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=route.go -destination=mocks/mock_route.go -package=mocks

const (
	// Количество отрезков между началом и концом маршрута, точек на одну больше
	routeSegments = 5
	// Сколько ближайших районов усредняется для точки маршрута
	nearestRegions = 3
	// Разброс точки в градусах, если место не найдено в списке районов
	fallbackJitter = 0.1
	// Средняя скорость, км/ч
	averageSpeedKmh = 30.0
	// Оценка маршрута, если районов нет
	defaultRouteScore = 70
)

// RouteRepository определяет контракт хранилища маршрутов
type RouteRepository interface {
	Create(ctx context.Context, route *models.Route) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Route, error)
	List(ctx context.Context) ([]*models.Route, error)
}

// RouteService определяет контракт расчета безопасности маршрутов
type RouteService interface {
	PlanRoute(ctx context.Context, source, destination string) (*models.Route, error)
	GetRoute(ctx context.Context, id uuid.UUID) (*models.Route, error)
	ListRoutes(ctx context.Context) ([]*models.Route, error)
}

type routeService struct {
	regions RegionRepository
	repo    RouteRepository
	rnd     random.Source
	logger  *logrus.Logger
	now     func() time.Time
}

func NewRouteService(regions RegionRepository, repo RouteRepository, rnd random.Source, logger *logrus.Logger, now func() time.Time) RouteService {
	if now == nil {
		now = time.Now
	}
	return &routeService{
		regions: regions,
		repo:    repo,
		rnd:     rnd,
		logger:  logger,
		now:     now,
	}
}

// PlanRoute строит прямой маршрут между двумя местами и оценивает его безопасность
// по районам вдоль пути. Все районы читаются одним снимком.
func (s *routeService) PlanRoute(ctx context.Context, source, destination string) (*models.Route, error) {
	source = strings.TrimSpace(source)
	destination = strings.TrimSpace(destination)
	log := s.logger.WithFields(logrus.Fields{
		"service":     "route",
		"method":      "PlanRoute",
		"source":      source,
		"destination": destination,
	})

	if source == "" || destination == "" {
		return nil, fmt.Errorf("service: source and destination are required: %w", models.ErrInvalidInput)
	}

	regions, err := s.regions.List(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to read regions snapshot")
		return nil, fmt.Errorf("service: could not read regions: %w", err)
	}

	from := s.resolve(source, regions)
	to := s.resolve(destination, regions)
	waypoints := geo.Waypoints(from, to, routeSegments)
	distance := scoring.Round2(geo.Haversine(from, to))

	route := &models.Route{
		ID:                 uuid.New(),
		Source:             source,
		Destination:        destination,
		SourceCoord:        from,
		DestinationCoord:   to,
		AverageSafetyScore: routeScore(waypoints, regions),
		DistanceKm:         distance,
		EstimatedMinutes:   int(math.Round(distance / averageSpeedKmh * 60)),
		Waypoints:          waypoints,
		CreatedAt:          s.now(),
	}

	if err := s.repo.Create(ctx, route); err != nil {
		log.WithError(err).Error("Failed to save route")
		return nil, fmt.Errorf("service: could not save route: %w", err)
	}

	log.WithFields(logrus.Fields{
		"route_id":    route.ID,
		"score":       route.AverageSafetyScore,
		"distance_km": route.DistanceKm,
	}).Info("Route planned")
	return route, nil
}

func (s *routeService) GetRoute(ctx context.Context, id uuid.UUID) (*models.Route, error) {
	route, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: not get route: %w", err)
	}
	return route, nil
}

// ListRoutes возвращает маршруты от новых к старым
func (s *routeService) ListRoutes(ctx context.Context) ([]*models.Route, error) {
	routes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list routes: %w", err)
	}
	return routes, nil
}

// resolve сопоставляет название места с районом: подстрока в любую сторону без учета регистра,
// первое совпадение в порядке снимка. Иначе центр города со случайным смещением.
func (s *routeService) resolve(label string, regions []*models.Region) models.Coordinate {
	needle := strings.ToLower(label)
	for _, r := range regions {
		name := strings.ToLower(r.Name)
		if name == "" {
			continue
		}
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			return r.Coordinate()
		}
	}
	return geo.Jitter(catalog.CityCentre, fallbackJitter, s.rnd.Float64)
}

// routeScore - среднее по точкам маршрута от средней оценки трех ближайших районов
func routeScore(waypoints []models.Coordinate, regions []*models.Region) int {
	if len(regions) == 0 || len(waypoints) == 0 {
		return defaultRouteScore
	}

	type ranked struct {
		dist  float64
		score int
	}
	total := 0.0
	for _, wp := range waypoints {
		near := make([]ranked, 0, len(regions))
		for _, r := range regions {
			near = append(near, ranked{dist: geo.EuclideanDegrees(wp, r.Coordinate()), score: r.SafetyScore})
		}
		slices.SortStableFunc(near, func(a, b ranked) int {
			return cmp.Compare(a.dist, b.dist)
		})
		if len(near) > nearestRegions {
			near = near[:nearestRegions]
		}

		sum := 0
		for _, n := range near {
			sum += n.score
		}
		total += float64(sum) / float64(len(near))
	}
	return int(math.Round(total / float64(len(waypoints))))
}
