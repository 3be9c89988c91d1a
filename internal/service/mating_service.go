package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/flock-console/internal/apiclient"
	"github.com/noah-isme/flock-console/internal/models"
)

const matingPath = "/mating-pairs"

// MatingService manages ram/ewe pairings.
type MatingService struct {
	api    apiCaller
	logger *zap.Logger
}

// NewMatingService constructs the mating pair service.
func NewMatingService(api apiCaller, logger *zap.Logger) *MatingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatingService{api: api, logger: logger}
}

// All lists every mating pair with ram and ewe expanded.
func (s *MatingService) All(ctx context.Context) ([]models.MatingPair, error) {
	var pairs []models.MatingPair
	if err := s.api.Get(ctx, matingPath, nil, &pairs); err != nil {
		s.logger.Warn("list mating pairs failed", zap.Error(err))
		return nil, err
	}
	return pairs, nil
}

// Get returns one mating pair.
func (s *MatingService) Get(ctx context.Context, id int64) (*models.MatingPair, error) {
	var pair models.MatingPair
	if err := s.api.Get(ctx, apiclient.IDPath(matingPath, id), nil, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Create pairs a ram with a ewe.
func (s *MatingService) Create(ctx context.Context, req models.MatingPairRequest) (*models.MatingPair, error) {
	var pair models.MatingPair
	if err := s.api.Post(ctx, matingPath, req, &pair); err != nil {
		s.logger.Warn("create mating pair failed", zap.Int64("ram_id", req.RamID), zap.Int64("ewe_id", req.EweID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("mating pair created", zap.Int64("id", pair.ID))
	return &pair, nil
}

// Update replaces a mating pair.
func (s *MatingService) Update(ctx context.Context, id int64, req models.MatingPairRequest) (*models.MatingPair, error) {
	var pair models.MatingPair
	if err := s.api.Put(ctx, apiclient.IDPath(matingPath, id), req, &pair); err != nil {
		s.logger.Warn("update mating pair failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return &pair, nil
}

// Delete removes a mating pair.
func (s *MatingService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, apiclient.IDPath(matingPath, id)); err != nil {
		s.logger.Warn("delete mating pair failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("mating pair deleted", zap.Int64("id", id))
	return nil
}
