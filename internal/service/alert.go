package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/city_safety_map/internal/models"
	"github.com/shenikar/city_safety_map/internal/webhook"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=alert.go -destination=mocks/mock_alert.go -package=mocks

// AlertRepository определяет контракт журнала алертов
type AlertRepository interface {
	Create(ctx context.Context, alert *models.Alert) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Alert, error)
	List(ctx context.Context, limit int) ([]*models.Alert, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// AlertNotifier получает каждый сохраненный алерт (SSE-рассылка)
type AlertNotifier interface {
	Publish(alert models.Alert)
}

// AlertService определяет контракт бизнес-логики алертов
type AlertService interface {
	CreateAlert(ctx context.Context, alert *models.Alert) error
	GetAlert(ctx context.Context, id uuid.UUID) (*models.Alert, error)
	ListAlerts(ctx context.Context, limit int) ([]*models.Alert, error)
	PruneAlerts(ctx context.Context, maxAge time.Duration) (int, error)
}

type alertService struct {
	repo      AlertRepository
	logger    *logrus.Logger
	notifier  AlertNotifier
	publisher webhook.WebhookPublisher
	now       func() time.Time
}

// NewAlertService создает сервис алертов. notifier и publisher могут быть nil.
func NewAlertService(repo AlertRepository, logger *logrus.Logger, notifier AlertNotifier, publisher webhook.WebhookPublisher, now func() time.Time) AlertService {
	if publisher == nil {
		publisher = webhook.NoopPublisher{}
	}
	if now == nil {
		now = time.Now
	}
	return &alertService{
		repo:      repo,
		logger:    logger,
		notifier:  notifier,
		publisher: publisher,
		now:       now,
	}
}

// CreateAlert сохраняет алерт и рассылает его подписчикам и во внешний вебхук
func (s *alertService) CreateAlert(ctx context.Context, alert *models.Alert) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "alert",
		"method":    "CreateAlert",
		"region_id": alert.RegionID,
		"severity":  alert.Severity,
	})

	if !alert.Severity.Valid() {
		return fmt.Errorf("service: unknown severity %q: %w", alert.Severity, models.ErrInvalidInput)
	}
	alert.Message = strings.TrimSpace(alert.Message)
	if alert.Message == "" {
		return fmt.Errorf("service: alert message is required: %w", models.ErrInvalidInput)
	}
	if strings.TrimSpace(alert.RegionID) == "" {
		return fmt.Errorf("service: alert region id is required: %w", models.ErrInvalidInput)
	}

	alert.ID = uuid.New()
	alert.Timestamp = s.now()

	if err := s.repo.Create(ctx, alert); err != nil {
		log.WithError(err).Error("Failed to create alert in repository")
		return fmt.Errorf("service: could not create alert: %w", err)
	}
	log.WithField("alert_id", alert.ID).Info("Alert created")

	if s.notifier != nil {
		s.notifier.Publish(*alert)
	}
	// Алерт уже сохранен, ошибка доставки вебхука не откатывает создание
	if err := s.publisher.Publish(ctx, webhook.NewAlertEvent(*alert, alert.Timestamp)); err != nil {
		log.WithError(err).Warn("Failed to publish alert webhook event")
	}
	return nil
}

// GetAlert получает алерт по ID
func (s *alertService) GetAlert(ctx context.Context, id uuid.UUID) (*models.Alert, error) {
	alert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: not get alert: %w", err)
	}
	return alert, nil
}

// ListAlerts возвращает алерты от новых к старым
func (s *alertService) ListAlerts(ctx context.Context, limit int) ([]*models.Alert, error) {
	if limit < 0 {
		limit = 0
	}
	alerts, err := s.repo.List(ctx, limit)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "alert",
			"method":  "ListAlerts",
		}).WithError(err).Error("Failed to list alerts from repository")
		return nil, fmt.Errorf("service: could not list alerts: %w", err)
	}
	return alerts, nil
}

// PruneAlerts удаляет алерты старше maxAge вне зависимости от важности
func (s *alertService) PruneAlerts(ctx context.Context, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, fmt.Errorf("service: max age must be positive, got %v: %w", maxAge, models.ErrInvalidInput)
	}

	removed, err := s.repo.DeleteOlderThan(ctx, s.now().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("service: could not prune alerts: %w", err)
	}
	if removed > 0 {
		s.logger.WithFields(logrus.Fields{
			"service": "alert",
			"method":  "PruneAlerts",
			"removed": removed,
		}).Debug("Old alerts pruned")
	}
	return removed, nil
}
