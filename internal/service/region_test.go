package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shenikar/city_safety_map/internal/models"
	"github.com/shenikar/city_safety_map/internal/service/mocks"
)

func newTestRegionService(t *testing.T) (*regionService, *mocks.MockRegionRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockRegionRepository(ctrl)
	svc := NewRegionService(repoMock, testLogger(), fixedNow)
	return svc.(*regionService), repoMock
}

func TestCreateRegion_ClampsScoreAndStampsTime(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestRegionService(t)
	ctx := context.Background()
	region := &models.Region{Name: "  Colaba ", Latitude: 18.9067, Longitude: 72.8147, SafetyScore: 140}

	// Ожидания
	repoMock.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, r *models.Region) error {
			r.ID = uuid.New()
			return nil
		}).Times(1)

	// Действие
	err := svc.CreateRegion(ctx, region)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "Colaba", region.Name)
	assert.Equal(t, 100, region.SafetyScore)
	assert.Equal(t, testNow, region.LastUpdated)
}

func TestCreateRegion_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		region *models.Region
	}{
		{"empty name", &models.Region{Name: " "}},
		{"latitude", &models.Region{Name: "A", Latitude: 91}},
		{"longitude", &models.Region{Name: "A", Longitude: -181}},
		{"lighting", &models.Region{Name: "A", Signals: models.Signals{Lighting: 101}}},
		{"sentiment", &models.Region{Name: "A", Signals: models.Signals{Sentiment: -1.5}}},
		{"incidents", &models.Region{Name: "A", Signals: models.Signals{Incidents24h: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repoMock := newTestRegionService(t)
			repoMock.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

			assert.ErrorIs(t, svc.CreateRegion(context.Background(), tt.region), models.ErrInvalidInput)
		})
	}
}

func TestUpdateRegion_Success(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestRegionService(t)
	ctx := context.Background()
	id := uuid.New()
	score := -20
	expected := &models.Region{ID: id, Name: "Fort", SafetyScore: 0}

	// Ожидания
	repoMock.EXPECT().
		Update(ctx, id, gomock.Any(), testNow).
		DoAndReturn(func(ctx context.Context, id uuid.UUID, upd models.RegionUpdate, at time.Time) (*models.Region, error) {
			require.NotNil(t, upd.SafetyScore)
			assert.Equal(t, 0, *upd.SafetyScore)
			return expected, nil
		}).Times(1)

	// Действие
	region, err := svc.UpdateRegion(ctx, id, models.RegionUpdate{SafetyScore: &score})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, region)
}

func TestUpdateRegion_Empty(t *testing.T) {
	svc, repoMock := newTestRegionService(t)
	repoMock.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.UpdateRegion(context.Background(), uuid.New(), models.RegionUpdate{})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestUpdateRegion_NotFound(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestRegionService(t)
	ctx := context.Background()
	id := uuid.New()
	name := "Nowhere"

	// Ожидания
	repoMock.EXPECT().Update(ctx, id, gomock.Any(), gomock.Any()).Return(nil, models.ErrNotFound).Times(1)

	// Действие
	_, err := svc.UpdateRegion(ctx, id, models.RegionUpdate{Name: &name})

	// Проверки
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStats(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestRegionService(t)
	ctx := context.Background()
	later := testNow.Add(time.Minute)
	regions := []*models.Region{
		{Name: "A", SafetyScore: 85, LastUpdated: testNow},
		{Name: "B", SafetyScore: 70, LastUpdated: later},
		{Name: "C", SafetyScore: 69, LastUpdated: testNow},
		{Name: "D", SafetyScore: 39, LastUpdated: testNow},
	}

	// Ожидания
	repoMock.EXPECT().List(ctx).Return(regions, nil).Times(1)

	// Действие
	stats, err := svc.Stats(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 65.75, stats.AverageScore)
	assert.Equal(t, 2, stats.ByTier[models.RiskTierSafe])
	assert.Equal(t, 1, stats.ByTier[models.RiskTierModerate])
	assert.Equal(t, 1, stats.ByTier[models.RiskTierUnsafe])
	assert.Equal(t, later, stats.LastUpdated)
}

func TestStats_Empty(t *testing.T) {
	svc, repoMock := newTestRegionService(t)
	ctx := context.Background()

	repoMock.EXPECT().List(ctx).Return([]*models.Region{}, nil).Times(1)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.AverageScore)
}
