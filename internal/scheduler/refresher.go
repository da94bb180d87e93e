// Package scheduler периодически пересчитывает оценки районов, генерирует алерты
// и чистит устаревший журнал алертов.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/shenikar/city_safety_map/internal/alerting"
	"github.com/shenikar/city_safety_map/internal/catalog"
	"github.com/shenikar/city_safety_map/internal/models"
	"github.com/shenikar/city_safety_map/internal/random"
	"github.com/shenikar/city_safety_map/internal/scoring"
	"github.com/shenikar/city_safety_map/internal/service"
)

const (
	// Вероятность алерта на тике
	tickAlertThreshold = 0.7
	// Начальное количество алертов: от seedAlertsMin до seedAlertsMin+seedAlertsSpread-1
	seedAlertsMin    = 3
	seedAlertsSpread = 5
)

var ErrAlreadyStarted = errors.New("scheduler already started")

// Options - параметры планировщика
type Options struct {
	Interval  time.Duration
	Retention time.Duration
}

// TickReport - итог одного тика
type TickReport struct {
	Updated      int
	Failed       int
	AlertEmitted bool
	Pruned       int
}

// Refresher пересчитывает все районы по расписанию cron
type Refresher struct {
	regions  service.RegionService
	alerts   service.AlertService
	signals  *scoring.Generator
	alertGen *alerting.Generator
	rnd      random.Source
	logger   *logrus.Logger
	opts     Options

	cron    *cron.Cron
	mu      sync.Mutex
	started bool

	// Metrics
	ticks         metric.Int64Counter
	failures      metric.Int64Counter
	alertsEmitted metric.Int64Counter
	tickDuration  metric.Float64Histogram
	tracer        trace.Tracer
}

func NewRefresher(
	regions service.RegionService,
	alerts service.AlertService,
	signals *scoring.Generator,
	alertGen *alerting.Generator,
	rnd random.Source,
	logger *logrus.Logger,
	meter metric.Meter,
	opts Options,
) *Refresher {
	cronLogger := newCronLogger(logger)
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	ticks, _ := meter.Int64Counter("city_safety_refresh_ticks_total")
	failures, _ := meter.Int64Counter("city_safety_refresh_region_failures_total")
	alertsEmitted, _ := meter.Int64Counter("city_safety_alerts_emitted_total")
	tickDuration, _ := meter.Float64Histogram("city_safety_refresh_tick_duration_seconds", metric.WithUnit("s"))

	return &Refresher{
		regions:       regions,
		alerts:        alerts,
		signals:       signals,
		alertGen:      alertGen,
		rnd:           rnd,
		logger:        logger,
		opts:          opts,
		cron:          c,
		ticks:         ticks,
		failures:      failures,
		alertsEmitted: alertsEmitted,
		tickDuration:  tickDuration,
		tracer:        otel.Tracer("city-safety-map/scheduler"),
	}
}

// Start заполняет пустое хранилище районами из каталога и запускает периодический пересчет.
// Тики не пересекаются: если предыдущий еще идет, очередной пропускается.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return ErrAlreadyStarted
	}

	count, err := r.regions.CountRegions(ctx)
	if err != nil {
		return fmt.Errorf("scheduler: count regions: %w", err)
	}
	if count == 0 {
		if err := r.Seed(ctx); err != nil {
			return err
		}
	}

	spec := fmt.Sprintf("@every %s", r.opts.Interval)
	if _, err := r.cron.AddFunc(spec, func() { r.Tick(ctx) }); err != nil {
		return fmt.Errorf("scheduler: add cron entry %q: %w", spec, err)
	}
	r.cron.Start()
	r.started = true

	r.logger.WithField("interval", r.opts.Interval.String()).Info("Refresh scheduler started")
	return nil
}

// Stop останавливает cron и ждет завершения текущего тика
func (r *Refresher) Stop(ctx context.Context) error {
	stopCtx := r.cron.Stop()

	select {
	case <-stopCtx.Done():
		r.logger.Info("Refresh scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		r.logger.Warn("Refresh scheduler stop timeout")
		return ctx.Err()
	}
}

// Seed создает районы из каталога и несколько стартовых алертов
func (r *Refresher) Seed(ctx context.Context) error {
	created := make([]*models.Region, 0, len(catalog.Mumbai()))
	for _, loc := range catalog.Mumbai() {
		signals := r.signals.Generate(loc.BaseScore)
		region := &models.Region{
			Name:        loc.Name,
			Latitude:    loc.Latitude,
			Longitude:   loc.Longitude,
			SafetyScore: scoring.StoredScore(scoring.Compute(signals, scoring.DefaultPrevious)),
			Signals:     signals,
		}
		if err := r.regions.CreateRegion(ctx, region); err != nil {
			return fmt.Errorf("scheduler: seed region %q: %w", loc.Name, err)
		}
		created = append(created, region)
	}

	initial := seedAlertsMin + r.rnd.IntN(seedAlertsSpread)
	for i := 0; i < initial; i++ {
		if err := r.emitAlert(ctx, created); err != nil {
			r.logger.WithError(err).Warn("Failed to create initial alert")
		}
	}

	r.logger.WithFields(logrus.Fields{
		"regions": len(created),
		"alerts":  initial,
	}).Info("Regions seeded from catalog")
	return nil
}

// Tick пересчитывает все районы, с вероятностью 0.3 создает алерт и чистит старые алерты.
// Ошибка или паника в одном районе не прерывает обработку остальных.
func (r *Refresher) Tick(ctx context.Context) TickReport {
	ctx, span := r.tracer.Start(ctx, "scheduler.tick")
	defer span.End()
	start := time.Now()
	var report TickReport

	log := r.logger.WithField("component", "scheduler")

	regions, err := r.regions.ListRegions(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list regions for refresh")
		r.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "list")))
		regions = nil
	}

	for _, region := range regions {
		if _, err := r.refreshRegion(ctx, region); err != nil {
			report.Failed++
			log.WithError(err).WithField("region_id", region.ID).Error("Failed to refresh region")
			r.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "update")))
			continue
		}
		report.Updated++
	}

	// Алерт строится по снимку районов на начало тика
	if len(regions) > 0 && r.rnd.Float64() > tickAlertThreshold {
		if err := r.emitAlert(ctx, regions); err != nil {
			log.WithError(err).Warn("Failed to create tick alert")
		} else {
			report.AlertEmitted = true
		}
	}

	pruned, err := r.alerts.PruneAlerts(ctx, r.opts.Retention)
	if err != nil {
		log.WithError(err).Warn("Failed to prune alerts")
	}
	report.Pruned = pruned

	r.ticks.Add(ctx, 1)
	r.tickDuration.Record(ctx, time.Since(start).Seconds())
	log.WithFields(logrus.Fields{
		"updated": report.Updated,
		"failed":  report.Failed,
		"alert":   report.AlertEmitted,
		"pruned":  report.Pruned,
	}).Debug("Refresh tick completed")
	return report
}

// refreshRegion пересчитывает один район. Паника превращается в ошибку.
func (r *Refresher) refreshRegion(ctx context.Context, region *models.Region) (updated *models.Region, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("scheduler: panic while refreshing region %s: %v: %w", region.Name, p, models.ErrInternal)
		}
	}()

	signals := r.signals.Generate(catalog.BaseScore(region.Name))
	score := scoring.StoredScore(scoring.Compute(signals, float64(region.SafetyScore)))
	return r.regions.UpdateRegion(ctx, region.ID, models.RegionUpdate{
		SafetyScore: &score,
		Signals:     &signals,
	})
}

func (r *Refresher) emitAlert(ctx context.Context, regions []*models.Region) error {
	if len(regions) == 0 {
		return nil
	}
	region := regions[r.rnd.IntN(len(regions))]
	alert := r.alertGen.ForRegion(region)
	if err := r.alerts.CreateAlert(ctx, alert); err != nil {
		return err
	}
	r.alertsEmitted.Add(ctx, 1, metric.WithAttributes(attribute.String("severity", string(alert.Severity))))
	return nil
}
