package scan

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/fedragon/chartsweep/internal/models"

	"go.uber.org/zap"
)

// Walk recursively visits root and emits one chart per parseable
// non-directory entry. Names without enough fields to carry a date are
// logged and skipped. Any other failure (listing a directory, a date token
// that does not parse) stops the walk and is emitted as a chart carrying
// only Err.
func Walk(logger *zap.Logger, root string) <-chan models.Chart {
	charts := make(chan models.Chart)

	go func() {
		defer close(charts)

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return &models.IOError{Err: err}
			}

			if d.IsDir() {
				return nil
			}

			chart, err := Parse(path)
			if err != nil {
				if errors.Is(err, ErrFieldCount) {
					logger.Error("Error processing path", zap.String("path", path))
					return nil
				}

				return err
			}

			charts <- chart
			return nil
		})

		if err != nil {
			charts <- models.Chart{Err: err}
		}
	}()

	return charts
}
