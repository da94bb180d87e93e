package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func TestInit_NoEndpoints(t *testing.T) {
	ctx := context.Background()

	p := Init(ctx, Config{ServiceName: "test-service"}, testLogger())

	assert.False(t, p.MetricsEnabled())
	assert.False(t, p.TracingEnabled())

	// Инструменты no-op провайдера работают без коллектора
	counter, err := p.Meter().Int64Counter("test_counter_total")
	require.NoError(t, err)
	counter.Add(ctx, 1)

	assert.NoError(t, p.Shutdown(ctx))
}

func TestInit_WithEndpoints(t *testing.T) {
	ctx := context.Background()

	// Экспортеры подключаются лениво, поэтому инициализация проходит и без коллектора
	p := Init(ctx, Config{
		ServiceName:     "test-service",
		MetricsEndpoint: "127.0.0.1:4317",
		TracesEndpoint:  "127.0.0.1:4317",
	}, testLogger())

	assert.True(t, p.MetricsEnabled())
	assert.True(t, p.TracingEnabled())

	shutdownCtx, cancel := context.WithCancel(ctx)
	cancel()
	_ = p.Shutdown(shutdownCtx) // Ошибку игнорируем: коллектора в тестовом окружении нет
}

func TestNewResource_KeepsServiceName(t *testing.T) {
	res, err := newResource("city-safety-map-test")

	require.NoError(t, err)
	assert.Equal(t, semconv.SchemaURL, res.SchemaURL())

	name, ok := res.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	assert.Equal(t, "city-safety-map-test", name.AsString())

	// Атрибуты SDK по умолчанию тоже сохраняются
	_, ok = res.Set().Value(semconv.TelemetrySDKNameKey)
	assert.True(t, ok)
}
