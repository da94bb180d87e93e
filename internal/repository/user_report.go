package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shenikar/city_safety_map/internal/models"
	"github.com/shenikar/city_safety_map/internal/service"
)

// ReportRepository хранит пользовательские отчеты. Отчеты не удаляются.
type ReportRepository struct {
	mu      sync.RWMutex
	reports []models.UserReport
}

func NewReportRepository() service.ReportRepository {
	return &ReportRepository{}
}

func (r *ReportRepository) Create(ctx context.Context, report *models.UserReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	r.reports = append(r.reports, *report)
	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UserReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.reports {
		if r.reports[i].ID == id {
			out := r.reports[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("user report with id %s: %w", id, models.ErrNotFound)
}

// List возвращает отчеты от новых к старым
func (r *ReportRepository) List(ctx context.Context) ([]*models.UserReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	reports := make([]*models.UserReport, 0, len(r.reports))
	for i := len(r.reports) - 1; i >= 0; i-- {
		report := r.reports[i]
		reports = append(reports, &report)
	}
	return reports, nil
}
