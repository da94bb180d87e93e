package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/city_safety_map/internal/catalog"
	"github.com/shenikar/city_safety_map/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=user_report.go -destination=mocks/mock_user_report.go -package=mocks

// Сколько символов описания попадает в текст алерта
const reportExcerptLen = 100

// ReportRepository определяет контракт хранилища пользовательских отчетов
type ReportRepository interface {
	Create(ctx context.Context, report *models.UserReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserReport, error)
	List(ctx context.Context) ([]*models.UserReport, error)
}

// ReportService определяет контракт работы с пользовательскими отчетами
type ReportService interface {
	CreateReport(ctx context.Context, report *models.UserReport) error
	GetReport(ctx context.Context, id uuid.UUID) (*models.UserReport, error)
	ListReports(ctx context.Context) ([]*models.UserReport, error)
}

type reportService struct {
	repo   ReportRepository
	alerts AlertService
	logger *logrus.Logger
	now    func() time.Time
}

func NewReportService(repo ReportRepository, alerts AlertService, logger *logrus.Logger, now func() time.Time) ReportService {
	if now == nil {
		now = time.Now
	}
	return &reportService{
		repo:   repo,
		alerts: alerts,
		logger: logger,
		now:    now,
	}
}

// CreateReport сохраняет отчет. Отчет категории incident порождает ровно один алерт warning.
func (s *reportService) CreateReport(ctx context.Context, report *models.UserReport) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "report",
		"method":   "CreateReport",
		"category": report.Category,
	})

	report.Location = strings.TrimSpace(report.Location)
	report.Description = strings.TrimSpace(report.Description)
	switch {
	case report.Location == "":
		return fmt.Errorf("service: report location is required: %w", models.ErrInvalidInput)
	case report.Description == "":
		return fmt.Errorf("service: report description is required: %w", models.ErrInvalidInput)
	case !report.Category.Valid():
		return fmt.Errorf("service: unknown report category %q: %w", report.Category, models.ErrInvalidInput)
	}
	if report.Latitude == 0 && report.Longitude == 0 {
		report.Latitude = catalog.CityCentre.Lat
		report.Longitude = catalog.CityCentre.Lng
	}
	if err := validateCoordinate(report.Latitude, report.Longitude); err != nil {
		return err
	}

	report.ID = uuid.New()
	report.Timestamp = s.now()
	if err := s.repo.Create(ctx, report); err != nil {
		log.WithError(err).Error("Failed to create user report in repository")
		return fmt.Errorf("service: could not create user report: %w", err)
	}
	log.WithField("report_id", report.ID).Info("User report created")

	if report.Category != models.ReportCategoryIncident {
		return nil
	}

	alert := &models.Alert{
		RegionID: models.UserReportRegionID,
		Severity: models.SeverityWarning,
		Message:  fmt.Sprintf("User reported incident near %s: %s", report.Location, excerpt(report.Description, reportExcerptLen)),
	}
	if err := s.alerts.CreateAlert(ctx, alert); err != nil {
		log.WithError(err).Error("Failed to create alert for incident report")
		return fmt.Errorf("service: could not create alert for report: %w", err)
	}
	return nil
}

func (s *reportService) GetReport(ctx context.Context, id uuid.UUID) (*models.UserReport, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: not get user report: %w", err)
	}
	return report, nil
}

// ListReports возвращает отчеты от новых к старым
func (s *reportService) ListReports(ctx context.Context) ([]*models.UserReport, error) {
	reports, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list user reports: %w", err)
	}
	return reports, nil
}

// excerpt обрезает строку до n символов (рун)
func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
