package internal

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fedragon/chartsweep/internal/core"
	"github.com/fedragon/chartsweep/internal/db"
	"github.com/fedragon/chartsweep/internal/models"
	"github.com/fedragon/chartsweep/internal/scan"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/mitchellh/go-homedir"
	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

// ErrLocked is returned when another sweep holds the journal lock.
var ErrLocked = errors.New("another chartsweep run is in progress")

type Runner struct {
	logger        *zap.Logger
	root          string
	dbPath        string
	quarantineDir string
	dryRun        bool
}

func NewRunner(logger *zap.Logger, root string, dbPath string, quarantineDir string, dryRun bool) *Runner {
	return &Runner{
		logger:        logger,
		root:          root,
		dbPath:        dbPath,
		quarantineDir: quarantineDir,
		dryRun:        dryRun,
	}
}

// Run walks the root, keeps the latest-dated tile per group and removes the
// rest, journaling the outcome. The first filesystem or date-format failure
// aborts the whole run.
func (r *Runner) Run() error {
	start := time.Now()
	defer func() {
		r.logger.Info("Elapsed time", zap.Duration("elapsed", time.Since(start)))
	}()

	if r.dryRun {
		r.logger.Info("Running in DRY-RUN mode: superseded files will not be removed")
	}

	root, err := homedir.Expand(r.root)
	if err != nil {
		return &models.IOError{Err: err}
	}
	dbPath, err := homedir.Expand(r.dbPath)
	if err != nil {
		return &models.IOError{Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return &models.IOError{Err: err}
	}

	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return &models.IOError{Err: err}
	}
	if !locked {
		return ErrLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn(err.Error())
		}
	}()

	journal, err := db.Connect(dbPath)
	if err != nil {
		return &models.IOError{Err: err}
	}
	defer func() {
		if err := journal.Close(); err != nil {
			r.logger.Warn(err.Error())
		}
	}()

	deduper := core.NewDeduper(r.logger)
	for chart := range scan.Walk(r.logger, root) {
		if chart.Err != nil {
			return chart.Err
		}

		deduper.Add(chart)
	}

	removed, err := r.remove(deduper.Removals())
	if err != nil {
		return err
	}

	kept := deduper.Kept()

	run := db.Run{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Root:      root,
		Kept:      len(kept),
		Removed:   removed,
		DryRun:    r.dryRun,
	}
	if err := db.Record(journal, run); err != nil {
		return &models.IOError{Err: err}
	}

	r.logger.Info("Found files to keep", zap.Int("count", len(kept)))
	r.logger.Info("Found files to remove", zap.Int("count", len(removed)))

	return nil
}

// remove deletes (or quarantines) each path in order, stopping at the first
// failure. Digests are taken before anything is touched so the journal
// records what was on disk.
func (r *Runner) remove(paths []string) ([]db.Removal, error) {
	if r.quarantineDir != "" && !r.dryRun {
		if err := os.MkdirAll(r.quarantineDir, os.ModePerm); err != nil {
			return nil, &models.IOError{Err: fmt.Errorf("unable to create quarantine directory %v: %w", r.quarantineDir, err)}
		}
	}

	removed := make([]db.Removal, 0, len(paths))

	for _, path := range paths {
		digest, err := scan.Digest(r.logger, path)
		if err != nil {
			return nil, &models.IOError{Err: err}
		}

		removed = append(removed, db.Removal{Path: path, Digest: hex.EncodeToString(digest)})

		if r.dryRun {
			r.logger.Info("Would remove", zap.String("path", path))
			continue
		}

		if r.quarantineDir != "" {
			if err := r.quarantine(path); err != nil {
				return nil, err
			}
			continue
		}

		r.logger.Info("Will remove", zap.String("path", path))
		if err := os.Remove(path); err != nil {
			return nil, &models.IOError{Err: err}
		}
	}

	return removed, nil
}

func (r *Runner) quarantine(path string) error {
	target := filepath.Join(r.quarantineDir, filepath.Base(path))

	buf, err := os.Open(path)
	if err != nil {
		return &models.IOError{Err: err}
	}

	r.logger.Info("Atomically moving file", zap.String("source", path), zap.String("dest", target))
	if err := atomic.WriteFile(target, bufio.NewReader(buf)); err != nil {
		_ = buf.Close()
		return &models.IOError{Err: err}
	}

	if err := buf.Close(); err != nil {
		r.logger.Warn(err.Error())
	}

	if err := os.Remove(path); err != nil {
		return &models.IOError{Err: err}
	}

	return nil
}
