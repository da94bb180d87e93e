package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenikar/city_safety_map/internal/config"
	"github.com/shenikar/city_safety_map/internal/models"
)

func newTestWorker(t *testing.T, url string) *WebhookWorker {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		WebhookURL:        url,
		WebhookSecret:     "secret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Millisecond,
	}
	return NewWebhookWorker(nil, logger, cfg)
}

func testEvent() (WebhookEvent, string) {
	event := NewAlertEvent(models.Alert{
		ID:       uuid.New(),
		RegionID: "r1",
		Severity: models.SeverityCritical,
		Message:  "Safety alert: Avoid Kurla East - critical incident in progress",
	}, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	payload, _ := json.Marshal(event)
	return event, string(payload)
}

func TestProcessWebhookEvent_DeliversSignedPayload(t *testing.T) {
	// Подготовка
	var gotBody []byte
	var gotSignature string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSignature = r.Header.Get(SignatureHeader)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	worker := newTestWorker(t, srv.URL)
	event, payload := testEvent()

	// Действие
	ok := worker.processWebhookEvent(context.Background(), event, payload)

	// Проверки
	require.True(t, ok)
	assert.JSONEq(t, payload, string(gotBody))
	assert.Equal(t, generateHMACSHA256(payload, "secret"), gotSignature)
}

func TestProcessWebhookEvent_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	worker := newTestWorker(t, srv.URL)
	event, payload := testEvent()

	assert.True(t, worker.processWebhookEvent(context.Background(), event, payload))
	assert.Equal(t, int32(3), calls.Load())
}

func TestProcessWebhookEvent_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	worker := newTestWorker(t, srv.URL)
	event, payload := testEvent()

	assert.False(t, worker.processWebhookEvent(context.Background(), event, payload))
	assert.Equal(t, int32(3), calls.Load())
}

func TestProcessWebhookEvent_NoRetryMessageAfterLastAttempt(t *testing.T) {
	// Подготовка
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	worker := newTestWorker(t, srv.URL)
	var logs bytes.Buffer
	worker.logger.SetOutput(&logs)
	event, payload := testEvent()

	// Действие
	delivered := worker.processWebhookEvent(context.Background(), event, payload)

	// Проверки: 3 попытки, повтор объявляется только после первых двух
	assert.False(t, delivered)
	assert.Equal(t, 2, strings.Count(logs.String(), "Retrying in"))
	assert.Equal(t, 1, strings.Count(logs.String(), "failed on last attempt"))
}

func TestProcessWebhookEvent_NoURL(t *testing.T) {
	worker := newTestWorker(t, "")
	event, payload := testEvent()

	assert.False(t, worker.processWebhookEvent(context.Background(), event, payload))
}

func TestGenerateHMACSHA256(t *testing.T) {
	sig := generateHMACSHA256("payload", "key")

	assert.Len(t, sig, 64)
	assert.Equal(t, sig, generateHMACSHA256("payload", "key"))
	assert.NotEqual(t, sig, generateHMACSHA256("payload", "other"))
}

func TestRedisWebhookPublisher_UnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	publisher := NewRedisWebhookPublisher(client)
	event, _ := testEvent()

	err := publisher.Publish(context.Background(), event)
	assert.ErrorContains(t, err, "failed to publish webhook event to Redis")
}

func TestNoopPublisher(t *testing.T) {
	event, _ := testEvent()
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), event))
}
