package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/flock-console/internal/models"
	appErrors "github.com/noah-isme/flock-console/pkg/errors"
)

const notificationsPath = "/notifications"

// NotificationService reads the computed reminder feeds.
type NotificationService struct {
	api    apiCaller
	logger *zap.Logger
}

// NewNotificationService constructs the notification service.
func NewNotificationService(api apiCaller, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{api: api, logger: logger}
}

// List fetches one feed and numbers its entries from 1.
func (s *NotificationService) List(ctx context.Context, category models.NotificationCategory) ([]models.Notification, error) {
	if !category.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown notification category %q", category))
	}
	path := notificationsPath
	if category != models.NotificationsAll {
		path += "/" + string(category)
	}
	var out []models.Notification
	if err := s.api.Get(ctx, path, nil, &out); err != nil {
		s.logger.Warn("list notifications failed", zap.String("category", string(category)), zap.Error(err))
		return nil, err
	}
	for i := range out {
		out[i].ID = int64(i + 1)
	}
	return out, nil
}

// All fetches the combined feed.
func (s *NotificationService) All(ctx context.Context) ([]models.Notification, error) {
	return s.List(ctx, models.NotificationsAll)
}
