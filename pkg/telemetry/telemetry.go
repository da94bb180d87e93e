// Package telemetry настраивает экспорт метрик и трейсов OpenTelemetry по OTLP/gRPC.
// Без адреса коллектора экспорт не включается и глобальные провайдеры остаются no-op.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	initTimeout    = 5 * time.Second
	exportInterval = 10 * time.Second
	meterName      = "city-safety-map"
)

// Config - адреса коллекторов. Пустой адрес отключает соответствующий экспорт.
type Config struct {
	ServiceName     string
	MetricsEndpoint string
	TracesEndpoint  string
}

// Provider хранит созданные провайдеры и умеет их корректно остановить
type Provider struct {
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
}

// Init включает экспорт и регистрирует глобальные провайдеры otel.
// Ошибка создания экспортера не фатальна: сервис продолжает работу без него.
func Init(ctx context.Context, cfg Config, logger *logrus.Logger) *Provider {
	p := &Provider{}
	log := logger.WithField("component", "telemetry")

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		log.WithError(err).Warn("Failed to merge otel resource, using service attributes only")
	}

	ctxInit, cancel := context.WithTimeout(ctx, initTimeout)
	defer cancel()
	dialOpt := grpc.WithTransportCredentials(insecure.NewCredentials())

	if cfg.MetricsEndpoint != "" {
		exp, err := otlpmetricgrpc.New(ctxInit,
			otlpmetricgrpc.WithEndpoint(cfg.MetricsEndpoint),
			otlpmetricgrpc.WithDialOption(dialOpt),
		)
		if err != nil {
			log.WithError(err).Warn("Metrics exporter init failed")
		} else {
			reader := sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(exportInterval))
			p.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader), sdkmetric.WithResource(res))
			otel.SetMeterProvider(p.meterProvider)
			log.WithField("endpoint", cfg.MetricsEndpoint).Info("Metrics exporter initialized")
		}
	}

	if cfg.TracesEndpoint != "" {
		exp, err := otlptracegrpc.New(ctxInit,
			otlptracegrpc.WithEndpoint(cfg.TracesEndpoint),
			otlptracegrpc.WithDialOption(dialOpt),
		)
		if err != nil {
			log.WithError(err).Warn("Trace exporter init failed")
		} else {
			p.tracerProvider = sdktrace.NewTracerProvider(
				sdktrace.WithBatcher(exp),
				sdktrace.WithResource(res),
			)
			otel.SetTracerProvider(p.tracerProvider)
			log.WithField("endpoint", cfg.TracesEndpoint).Info("Trace exporter initialized")
		}
	}

	return p
}

// newResource описывает сервис для экспортируемых данных.
// При конфликте схем с ресурсом по умолчанию service.name все равно сохраняется.
func newResource(serviceName string) (*sdkresource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(serviceName),
		attribute.String("service", serviceName),
	}
	res, err := sdkresource.Merge(sdkresource.Default(), sdkresource.NewWithAttributes(semconv.SchemaURL, attrs...))
	if err != nil {
		return sdkresource.NewSchemaless(attrs...), fmt.Errorf("telemetry: merge resource: %w", err)
	}
	return res, nil
}

// Meter возвращает meter сервиса из глобального провайдера
func (p *Provider) Meter() metric.Meter {
	return otel.Meter(meterName)
}

// MetricsEnabled сообщает, что метрики реально экспортируются
func (p *Provider) MetricsEnabled() bool {
	return p.meterProvider != nil
}

// TracingEnabled сообщает, что трейсы реально экспортируются
func (p *Provider) TracingEnabled() bool {
	return p.tracerProvider != nil
}

// Shutdown выгружает накопленные данные и останавливает экспортеры
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("telemetry: shutdown meter provider: %w", err))
		}
	}
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("telemetry: shutdown tracer provider: %w", err))
		}
	}
	return errors.Join(errs...)
}
