package service

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/noah-isme/flock-console/pkg/export"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
}

type exportObserver interface {
	ObserveExport(entity, format string)
}

// ExportService persists rendered list exports.
type ExportService struct {
	storage fileStorage
	metrics exportObserver
	logger  *zap.Logger
}

// NewExportService constructs an ExportService. metrics may be nil.
func NewExportService(storage fileStorage, metrics exportObserver, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{storage: storage, metrics: metrics, logger: logger}
}

// Save writes the artifact and returns where it landed.
func (s *ExportService) Save(entity, format string, artifact export.Artifact) (string, error) {
	if artifact.Filename == "" {
		return "", fmt.Errorf("export artifact has no filename")
	}
	path, err := s.storage.Save(artifact.Filename, artifact.Data)
	if err != nil {
		s.logger.Error("export save failed", zap.String("entity", entity), zap.Error(err))
		return "", err
	}
	if s.metrics != nil {
		s.metrics.ObserveExport(entity, format)
	}
	s.logger.Info("export saved",
		zap.String("entity", entity),
		zap.String("format", format),
		zap.String("path", path),
		zap.Int("bytes", len(artifact.Data)),
	)
	return path, nil
}

// Open returns a handle to a stored export.
func (s *ExportService) Open(filename string) (*os.File, error) {
	return s.storage.Open(filename)
}

// Delete removes a stored export.
func (s *ExportService) Delete(filename string) error {
	return s.storage.Delete(filename)
}
