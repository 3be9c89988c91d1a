package service

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/flock-console/pkg/export"
	"github.com/noah-isme/flock-console/pkg/storage"
)

func TestExportServiceSave(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	metrics := NewMetricsService()
	svc := NewExportService(store, metrics, zap.NewNop())

	artifact := export.Artifact{Filename: "mating-pairs-2024-03-05.csv", ContentType: "text/csv", Data: []byte("Ram,Ewe\n\"a\",\"b\"")}
	path, err := svc.Save("mating_pairs", "csv", artifact)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, artifact.Filename), path)

	file, err := svc.Open(artifact.Filename)
	require.NoError(t, err)
	content, err := io.ReadAll(file)
	require.NoError(t, file.Close())
	require.NoError(t, err)
	assert.Equal(t, artifact.Data, content)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.exportsTotal.WithLabelValues("mating_pairs", "csv")))
	require.NoError(t, svc.Delete(artifact.Filename))
}

func TestExportServiceRejectsUnnamedArtifact(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	_, err = NewExportService(store, nil, nil).Save("sheep", "csv", export.Artifact{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "filename"))
}
