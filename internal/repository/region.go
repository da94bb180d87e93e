package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/city_safety_map/internal/models"
	"github.com/shenikar/city_safety_map/internal/service"
)

// RegionRepository хранит районы в памяти в порядке добавления.
// Наружу всегда отдаются копии, поэтому читатель не увидит частично обновленный район.
type RegionRepository struct {
	mu    sync.RWMutex
	order []uuid.UUID
	items map[uuid.UUID]*models.Region
}

func NewRegionRepository() service.RegionRepository {
	return &RegionRepository{
		items: make(map[uuid.UUID]*models.Region),
	}
}

// Create сохраняет новый район. Пустой ID заменяется сгенерированным.
func (r *RegionRepository) Create(ctx context.Context, region *models.Region) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if region.ID == uuid.Nil {
		region.ID = uuid.New()
	}
	if _, ok := r.items[region.ID]; ok {
		return fmt.Errorf("region with id %s already exists: %w", region.ID, models.ErrInvalidInput)
	}

	stored := *region
	r.items[region.ID] = &stored
	r.order = append(r.order, region.ID)
	return nil
}

// GetByID возвращает копию района по его UUID
func (r *RegionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	region, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("region with id %s: %w", id, models.ErrNotFound)
	}
	out := *region
	return &out, nil
}

// List возвращает снимок всех районов в порядке добавления
func (r *RegionRepository) List(ctx context.Context) ([]*models.Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	regions := make([]*models.Region, 0, len(r.order))
	for _, id := range r.order {
		region := *r.items[id]
		regions = append(regions, &region)
	}
	return regions, nil
}

// Update применяет частичное обновление и сдвигает LastUpdated.
// Неизвестный id ничего не создает и возвращает ErrNotFound.
func (r *RegionRepository) Update(ctx context.Context, id uuid.UUID, upd models.RegionUpdate, updatedAt time.Time) (*models.Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("region with id %s not found for update: %w", id, models.ErrNotFound)
	}

	next := *current
	if upd.Name != nil {
		next.Name = *upd.Name
	}
	if upd.Latitude != nil {
		next.Latitude = *upd.Latitude
	}
	if upd.Longitude != nil {
		next.Longitude = *upd.Longitude
	}
	if upd.SafetyScore != nil {
		next.SafetyScore = *upd.SafetyScore
	}
	if upd.Signals != nil {
		next.Signals = *upd.Signals
	}
	next.LastUpdated = updatedAt

	r.items[id] = &next
	out := next
	return &out, nil
}

func (r *RegionRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order), nil
}
