package service

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/flock-console/internal/apiclient"
	"github.com/noah-isme/flock-console/internal/models"
)

const healthPath = "/health"

// HealthService reads and writes health events.
type HealthService struct {
	api    apiCaller
	logger *zap.Logger
}

// NewHealthService constructs the health event service.
func NewHealthService(api apiCaller, logger *zap.Logger) *HealthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthService{api: api, logger: logger}
}

// List returns health events matching filter.
func (s *HealthService) List(ctx context.Context, filter models.HealthEventFilter) ([]models.HealthEvent, error) {
	var events []models.HealthEvent
	if err := s.api.Get(ctx, healthPath, healthQuery(filter), &events); err != nil {
		s.logger.Warn("list health events failed", zap.Error(err))
		return nil, err
	}
	return events, nil
}

// All lists every health event.
func (s *HealthService) All(ctx context.Context) ([]models.HealthEvent, error) {
	return s.List(ctx, models.HealthEventFilter{})
}

// Overdue lists events whose follow-up date has passed.
func (s *HealthService) Overdue(ctx context.Context) ([]models.HealthEvent, error) {
	var events []models.HealthEvent
	if err := s.api.Get(ctx, healthPath+"/overdue", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Get returns one health event.
func (s *HealthService) Get(ctx context.Context, id int64) (*models.HealthEvent, error) {
	var event models.HealthEvent
	if err := s.api.Get(ctx, apiclient.IDPath(healthPath, id), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create logs a new health event.
func (s *HealthService) Create(ctx context.Context, req models.CreateHealthEventRequest) (*models.HealthEvent, error) {
	var event models.HealthEvent
	if err := s.api.Post(ctx, healthPath, req, &event); err != nil {
		s.logger.Warn("create health event failed", zap.String("sheep_id", req.SheepID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("health event created", zap.Int64("id", event.ID), zap.String("event_type", string(event.EventType)))
	return &event, nil
}

// Update applies a partial update.
func (s *HealthService) Update(ctx context.Context, id int64, req models.UpdateHealthEventRequest) (*models.HealthEvent, error) {
	var event models.HealthEvent
	if err := s.api.Put(ctx, apiclient.IDPath(healthPath, id), req, &event); err != nil {
		s.logger.Warn("update health event failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// Delete removes a health event.
func (s *HealthService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, apiclient.IDPath(healthPath, id)); err != nil {
		s.logger.Warn("delete health event failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("health event deleted", zap.Int64("id", id))
	return nil
}

func healthQuery(filter models.HealthEventFilter) url.Values {
	query := url.Values{}
	if filter.SheepID != "" {
		query.Set("sheep_id", filter.SheepID)
	}
	if filter.EventType != "" {
		query.Set("event_type", string(filter.EventType))
	}
	if filter.StartDate != nil {
		query.Set("start_date", filter.StartDate.String())
	}
	if filter.EndDate != nil {
		query.Set("end_date", filter.EndDate.String())
	}
	if filter.Overdue != nil {
		query.Set("overdue", strconv.FormatBool(*filter.Overdue))
	}
	return query
}
