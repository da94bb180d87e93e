package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportCategory string

const (
	ReportCategoryIncident ReportCategory = "incident"
	ReportCategoryLighting ReportCategory = "lighting"
	ReportCategoryCrowd    ReportCategory = "crowd"
	ReportCategoryOther    ReportCategory = "other"
)

func (c ReportCategory) Valid() bool {
	switch c {
	case ReportCategoryIncident, ReportCategoryLighting, ReportCategoryCrowd, ReportCategoryOther:
		return true
	}
	return false
}

// UserReport - отчет пользователя о ситуации в конкретном месте
type UserReport struct {
	ID          uuid.UUID      `json:"id"`
	Location    string         `json:"location"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Category    ReportCategory `json:"category"`
	Description string         `json:"description"`
	Timestamp   time.Time      `json:"timestamp"`
}
