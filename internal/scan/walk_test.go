package scan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fedragon/chartsweep/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeFile(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), os.ModePerm))
	require.NoError(t, os.WriteFile(path, []byte("tile"), 0600))
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "A_20230101_1200_TIF"))
	writeFile(t, filepath.Join(root, "nested", "deeper", "A_20230215_0900_TIF"))
	writeFile(t, filepath.Join(root, "nested", "B_20230101_1200_TIF"))

	var charts []models.Chart
	for chart := range Walk(zap.NewNop(), root) {
		require.NoError(t, chart.Err)
		charts = append(charts, chart)
	}

	assert.Len(t, charts, 3)
	for _, chart := range charts {
		assert.NotEmpty(t, chart.Group)
		assert.False(t, chart.Date.IsZero())
	}
}

func TestWalk_SkipsUnparseableNames(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "A_20230101_1200_TIF"))
	writeFile(t, filepath.Join(root, "readme.txt"))

	core, logs := observer.New(zapcore.ErrorLevel)
	logger := zap.New(core)

	var charts []models.Chart
	for chart := range Walk(logger, root) {
		require.NoError(t, chart.Err)
		charts = append(charts, chart)
	}

	// the short name is neither kept nor removed, only logged
	require.Len(t, charts, 1)
	assert.Equal(t, "A", charts[0].Group)

	entries := logs.FilterMessage("Error processing path").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["path"], "readme.txt")
}

func TestWalk_AbortsOnInvalidDate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "A_20230101_1200_TIF"))
	writeFile(t, filepath.Join(root, "B_20239999_1200_TIF"))

	var walkErr error
	for chart := range Walk(zap.NewNop(), root) {
		if chart.Err != nil {
			walkErr = chart.Err
		}
	}

	var ferr *models.FormatError
	require.True(t, errors.As(walkErr, &ferr))
	assert.Equal(t, "20239999", ferr.Token)
}

func TestWalk_MissingRootIsFatal(t *testing.T) {
	var walkErr error
	for chart := range Walk(zap.NewNop(), filepath.Join(t.TempDir(), "absent")) {
		if chart.Err != nil {
			walkErr = chart.Err
		}
	}

	var ioerr *models.IOError
	require.True(t, errors.As(walkErr, &ioerr))
}
