package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/city_safety_map/internal/models"
)

const (
	webhookQueueKey = "city_safety:webhook_events"

	EventAlertCreated = "alert.created"
)

// WebhookEvent - структура для данных вебхука
type WebhookEvent struct {
	Type      string       `json:"type"`
	Alert     models.Alert `json:"alert"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewAlertEvent собирает событие о новом алерте
func NewAlertEvent(alert models.Alert, now time.Time) WebhookEvent {
	return WebhookEvent{
		Type:      EventAlertCreated,
		Alert:     alert,
		Timestamp: now,
	}
}

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

// WebhookPublisher - интерфейс для публикации вебхуков
type WebhookPublisher interface {
	Publish(ctx context.Context, event WebhookEvent) error
}

// RedisWebhookPublisher - реализация WebhookPublisher, использующая Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish публикует событие вебхука в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event WebhookEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH в голову списка, воркер забирает с хвоста через BRPOP
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}

// SeverityFilter пропускает дальше только алерты с важностью не ниже min
type SeverityFilter struct {
	next WebhookPublisher
	min  models.Severity
}

func NewSeverityFilter(next WebhookPublisher, min models.Severity) *SeverityFilter {
	return &SeverityFilter{next: next, min: min}
}

func (f *SeverityFilter) Publish(ctx context.Context, event WebhookEvent) error {
	if !event.Alert.Severity.AtLeast(f.min) {
		return nil
	}
	return f.next.Publish(ctx, event)
}

// NoopPublisher используется, когда Redis выключен
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, WebhookEvent) error { return nil }
