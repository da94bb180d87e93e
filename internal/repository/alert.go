package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/city_safety_map/internal/models"
	"github.com/shenikar/city_safety_map/internal/service"
)

// AlertRepository - журнал алертов в памяти
type AlertRepository struct {
	mu     sync.RWMutex
	alerts []models.Alert
}

func NewAlertRepository() service.AlertRepository {
	return &AlertRepository{}
}

func (r *AlertRepository) Create(ctx context.Context, alert *models.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	r.alerts = append(r.alerts, *alert)
	return nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Alert, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.alerts {
		if r.alerts[i].ID == id {
			out := r.alerts[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("alert with id %s: %w", id, models.ErrNotFound)
}

// List возвращает алерты от новых к старым. limit <= 0 означает без ограничения.
func (r *AlertRepository) List(ctx context.Context, limit int) ([]*models.Alert, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	snapshot := slices.Clone(r.alerts)
	r.mu.RUnlock()

	slices.SortStableFunc(snapshot, func(a, b models.Alert) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if limit > 0 && len(snapshot) > limit {
		snapshot = snapshot[:limit]
	}

	alerts := make([]*models.Alert, 0, len(snapshot))
	for i := range snapshot {
		alerts = append(alerts, &snapshot[i])
	}
	return alerts, nil
}

// DeleteOlderThan удаляет алерты, созданные раньше cutoff, и возвращает их количество
func (r *AlertRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.alerts)
	r.alerts = slices.DeleteFunc(r.alerts, func(a models.Alert) bool {
		return a.Timestamp.Before(cutoff)
	})
	return before - len(r.alerts), nil
}
