package scan

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fedragon/chartsweep/internal/models"
)

// DateLayout is the basic ISO-8601 calendar date embedded in tile names,
// e.g. 20230215.
const DateLayout = "20060102"

// ErrFieldCount marks a name with too few underscore-separated fields to
// carry a date. It is the only recoverable parse failure: the file is
// skipped, not removed.
var ErrFieldCount = errors.New("not enough underscore-separated fields")

// Parse derives a chart from a tile path of the form
// <group>_<YYYYMMDD>_<time>_<ext>. The group key is the filename minus its
// trailing date, time and extension fields; the date token is the
// third-from-last underscore field of the full path string, not of the
// filename. The two line up only when no directory on the path contains an
// underscore, which matches how tiles are laid out on disk.
func Parse(path string) (models.Chart, error) {
	fields := strings.Split(filepath.Base(path), "_")
	tokens := strings.Split(path, "_")
	if len(fields) < 3 || len(tokens) < 3 {
		return models.Chart{}, fmt.Errorf("%w: %s", ErrFieldCount, path)
	}

	group := strings.Join(fields[:len(fields)-3], "_")

	token := tokens[len(tokens)-3]
	date, err := time.Parse(DateLayout, token)
	if err != nil {
		return models.Chart{}, &models.FormatError{Token: token, Err: err}
	}

	return models.Chart{Group: group, Date: date, Path: path}, nil
}
