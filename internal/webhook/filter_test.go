package webhook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shenikar/city_safety_map/internal/models"
	"github.com/shenikar/city_safety_map/internal/webhook"
	"github.com/shenikar/city_safety_map/internal/webhook/mocks"
)

func TestSeverityFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockWebhookPublisher(ctrl)
	filter := webhook.NewSeverityFilter(next, models.SeverityWarning)
	ctx := context.Background()

	critical := webhook.NewAlertEvent(models.Alert{Severity: models.SeverityCritical}, time.Now())
	warning := webhook.NewAlertEvent(models.Alert{Severity: models.SeverityWarning}, time.Now())
	info := webhook.NewAlertEvent(models.Alert{Severity: models.SeverityInfo}, time.Now())

	// Ожидания: info не доходит до следующего издателя
	next.EXPECT().Publish(ctx, critical).Return(nil).Times(1)
	next.EXPECT().Publish(ctx, warning).Return(nil).Times(1)

	require.NoError(t, filter.Publish(ctx, critical))
	require.NoError(t, filter.Publish(ctx, warning))
	require.NoError(t, filter.Publish(ctx, info))
}
