package service

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/noah-isme/flock-console/internal/apiclient"
	"github.com/noah-isme/flock-console/internal/models"
)

const sheepPath = "/sheep"

// SheepService reads and writes sheep records.
type SheepService struct {
	api    apiCaller
	logger *zap.Logger
}

// NewSheepService constructs the sheep service.
func NewSheepService(api apiCaller, logger *zap.Logger) *SheepService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheepService{api: api, logger: logger}
}

// List returns every sheep matching filter.
func (s *SheepService) List(ctx context.Context, filter models.SheepFilter) ([]models.Sheep, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Sex != "" {
		query.Set("sex", string(filter.Sex))
	}
	if filter.Section != "" {
		query.Set("current_section", string(filter.Section))
	}
	if filter.Breed != "" {
		query.Set("breed", filter.Breed)
	}
	var sheep []models.Sheep
	if err := s.api.Get(ctx, sheepPath, query, &sheep); err != nil {
		s.logger.Warn("list sheep failed", zap.Error(err))
		return nil, err
	}
	return sheep, nil
}

// All lists the flock without filters.
func (s *SheepService) All(ctx context.Context) ([]models.Sheep, error) {
	return s.List(ctx, models.SheepFilter{})
}

// Get returns one sheep.
func (s *SheepService) Get(ctx context.Context, id int64) (*models.Sheep, error) {
	var sheep models.Sheep
	if err := s.api.Get(ctx, apiclient.IDPath(sheepPath, id), nil, &sheep); err != nil {
		return nil, err
	}
	return &sheep, nil
}

// Create registers a new sheep.
func (s *SheepService) Create(ctx context.Context, req models.CreateSheepRequest) (*models.Sheep, error) {
	var sheep models.Sheep
	if err := s.api.Post(ctx, sheepPath, req, &sheep); err != nil {
		s.logger.Warn("create sheep failed", zap.String("tag_id", req.TagID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("sheep created", zap.Int64("id", sheep.ID), zap.String("tag_id", sheep.TagID))
	return &sheep, nil
}

// Update applies a partial update.
func (s *SheepService) Update(ctx context.Context, id int64, req models.UpdateSheepRequest) (*models.Sheep, error) {
	var sheep models.Sheep
	if err := s.api.Put(ctx, apiclient.IDPath(sheepPath, id), req, &sheep); err != nil {
		s.logger.Warn("update sheep failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return &sheep, nil
}

// Delete removes a sheep.
func (s *SheepService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, apiclient.IDPath(sheepPath, id)); err != nil {
		s.logger.Warn("delete sheep failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("sheep deleted", zap.Int64("id", id))
	return nil
}

// AvailableRams lists active males that can be paired.
func (s *SheepService) AvailableRams(ctx context.Context) ([]models.Sheep, error) {
	var rams []models.Sheep
	if err := s.api.Get(ctx, sheepPath+"/available-rams", nil, &rams); err != nil {
		return nil, err
	}
	return rams, nil
}

// AvailableEwes lists active females that can be paired.
func (s *SheepService) AvailableEwes(ctx context.Context) ([]models.Sheep, error) {
	var ewes []models.Sheep
	if err := s.api.Get(ctx, sheepPath+"/available-ewes", nil, &ewes); err != nil {
		return nil, err
	}
	return ewes, nil
}
