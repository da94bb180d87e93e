package models

import (
	"time"

	"github.com/google/uuid"
)

// UserReportRegionID - идентификатор-заглушка для алертов из пользовательских отчетов
const UserReportRegionID = "user-report"

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Rank задает порядок важности: critical > warning > info. Неизвестная важность имеет ранг 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

func (s Severity) Valid() bool {
	return s.Rank() > 0
}

// AtLeast сообщает, что важность не ниже min
func (s Severity) AtLeast(min Severity) bool {
	return s.Rank() >= min.Rank()
}

func ParseSeverity(s string) (Severity, bool) {
	sev := Severity(s)
	return sev, sev.Valid()
}

// Alert - сообщение о безопасности, привязанное к району
type Alert struct {
	ID        uuid.UUID `json:"id"`
	RegionID  string    `json:"region_id"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
