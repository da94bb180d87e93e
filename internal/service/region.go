package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/city_safety_map/internal/models"
	"github.com/shenikar/city_safety_map/internal/scoring"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=region.go -destination=mocks/mock_region.go -package=mocks

// RegionRepository определяет контракт хранилища районов
type RegionRepository interface {
	Create(ctx context.Context, region *models.Region) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Region, error)
	List(ctx context.Context) ([]*models.Region, error)
	Update(ctx context.Context, id uuid.UUID, upd models.RegionUpdate, updatedAt time.Time) (*models.Region, error)
	Count(ctx context.Context) (int, error)
}

// RegionService определяет контракт бизнес-логики районов
type RegionService interface {
	CreateRegion(ctx context.Context, region *models.Region) error
	GetRegion(ctx context.Context, id uuid.UUID) (*models.Region, error)
	ListRegions(ctx context.Context) ([]*models.Region, error)
	UpdateRegion(ctx context.Context, id uuid.UUID, upd models.RegionUpdate) (*models.Region, error)
	CountRegions(ctx context.Context) (int, error)
	Stats(ctx context.Context) (*models.RegionStats, error)
}

type regionService struct {
	repo   RegionRepository
	logger *logrus.Logger
	now    func() time.Time
}

func NewRegionService(repo RegionRepository, logger *logrus.Logger, now func() time.Time) RegionService {
	if now == nil {
		now = time.Now
	}
	return &regionService{
		repo:   repo,
		logger: logger,
		now:    now,
	}
}

// CreateRegion проверяет и сохраняет новый район
func (s *regionService) CreateRegion(ctx context.Context, region *models.Region) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "region",
		"method":  "CreateRegion",
		"name":    region.Name,
	})

	region.Name = strings.TrimSpace(region.Name)
	if region.Name == "" {
		return fmt.Errorf("service: region name is required: %w", models.ErrInvalidInput)
	}
	if err := validateCoordinate(region.Latitude, region.Longitude); err != nil {
		return err
	}
	if err := validateSignals(region.Signals); err != nil {
		return err
	}
	region.SafetyScore = scoring.ClampScore(region.SafetyScore)
	if region.LastUpdated.IsZero() {
		region.LastUpdated = s.now()
	}

	if err := s.repo.Create(ctx, region); err != nil {
		log.WithError(err).Error("Failed to create region in repository")
		return fmt.Errorf("service: could not create region: %w", err)
	}

	log.WithField("region_id", region.ID).Debug("Region created")
	return nil
}

// GetRegion получает район по ID
func (s *regionService) GetRegion(ctx context.Context, id uuid.UUID) (*models.Region, error) {
	region, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: not get region: %w", err)
	}
	return region, nil
}

// ListRegions возвращает снимок всех районов
func (s *regionService) ListRegions(ctx context.Context) ([]*models.Region, error) {
	regions, err := s.repo.List(ctx)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "region",
			"method":  "ListRegions",
		}).WithError(err).Error("Failed to list regions from repository")
		return nil, fmt.Errorf("service: could not list regions: %w", err)
	}
	return regions, nil
}

// UpdateRegion применяет частичное обновление. Оценка приводится к [0, 100].
func (s *regionService) UpdateRegion(ctx context.Context, id uuid.UUID, upd models.RegionUpdate) (*models.Region, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "region",
		"method":    "UpdateRegion",
		"region_id": id,
	})

	if upd.IsEmpty() {
		return nil, fmt.Errorf("service: empty region update: %w", models.ErrInvalidInput)
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("service: region name is required: %w", models.ErrInvalidInput)
		}
		upd.Name = &name
	}
	if upd.Latitude != nil && (*upd.Latitude < -90 || *upd.Latitude > 90) {
		return nil, fmt.Errorf("service: latitude %v out of range: %w", *upd.Latitude, models.ErrInvalidInput)
	}
	if upd.Longitude != nil && (*upd.Longitude < -180 || *upd.Longitude > 180) {
		return nil, fmt.Errorf("service: longitude %v out of range: %w", *upd.Longitude, models.ErrInvalidInput)
	}
	if upd.Signals != nil {
		if err := validateSignals(*upd.Signals); err != nil {
			return nil, err
		}
	}
	if upd.SafetyScore != nil {
		score := scoring.ClampScore(*upd.SafetyScore)
		upd.SafetyScore = &score
	}

	region, err := s.repo.Update(ctx, id, upd, s.now())
	if err != nil {
		log.WithError(err).Debug("Failed to update region in repository")
		return nil, fmt.Errorf("service: could not update region: %w", err)
	}
	return region, nil
}

func (s *regionService) CountRegions(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("service: could not count regions: %w", err)
	}
	return n, nil
}

// Stats считает количество районов по уровням риска и среднюю оценку
func (s *regionService) Stats(ctx context.Context) (*models.RegionStats, error) {
	regions, err := s.ListRegions(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.RegionStats{
		Total: len(regions),
		ByTier: map[models.RiskTier]int{
			models.RiskTierSafe:     0,
			models.RiskTierModerate: 0,
			models.RiskTierUnsafe:   0,
		},
	}
	if len(regions) == 0 {
		return stats, nil
	}

	sum := 0
	for _, r := range regions {
		sum += r.SafetyScore
		stats.ByTier[r.Tier()]++
		if r.LastUpdated.After(stats.LastUpdated) {
			stats.LastUpdated = r.LastUpdated
		}
	}
	stats.AverageScore = scoring.Round2(float64(sum) / float64(len(regions)))
	return stats, nil
}

func validateCoordinate(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("service: latitude %v out of range: %w", lat, models.ErrInvalidInput)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("service: longitude %v out of range: %w", lng, models.ErrInvalidInput)
	}
	return nil
}

// validateSignals проверяет, что сигналы лежат в своих диапазонах
func validateSignals(sig models.Signals) error {
	switch {
	case sig.Lighting < 0 || sig.Lighting > 100:
		return fmt.Errorf("service: lighting %d out of range: %w", sig.Lighting, models.ErrInvalidInput)
	case sig.CrowdDensity < 0 || sig.CrowdDensity > 100:
		return fmt.Errorf("service: crowd density %d out of range: %w", sig.CrowdDensity, models.ErrInvalidInput)
	case sig.Incidents24h < 0:
		return fmt.Errorf("service: incidents count %d is negative: %w", sig.Incidents24h, models.ErrInvalidInput)
	case sig.Sentiment < -1 || sig.Sentiment > 1:
		return fmt.Errorf("service: sentiment %v out of range: %w", sig.Sentiment, models.ErrInvalidInput)
	case sig.WeatherRisk < 0 || sig.WeatherRisk > 1:
		return fmt.Errorf("service: weather risk %v out of range: %w", sig.WeatherRisk, models.ErrInvalidInput)
	case sig.NightFactor < 0 || sig.NightFactor > 1:
		return fmt.Errorf("service: night factor %v out of range: %w", sig.NightFactor, models.ErrInvalidInput)
	}
	return nil
}
