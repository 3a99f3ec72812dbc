package core

import (
	"sort"

	"github.com/fedragon/chartsweep/internal/models"

	"go.uber.org/zap"
)

// Deduper partitions discovered charts into a keep set (at most one chart
// per group, the latest-dated seen so far) and a remove set (paths of
// superseded charts). Decisions are local and final: a removed path is
// never reconsidered, though a kept chart can still be displaced by a later
// arrival.
type Deduper struct {
	logger *zap.Logger
	keep   map[string]models.Chart
	remove map[string]struct{}
}

func NewDeduper(logger *zap.Logger) *Deduper {
	return &Deduper{
		logger: logger,
		keep:   make(map[string]models.Chart),
		remove: make(map[string]struct{}),
	}
}

// Add decides the fate of chart against the current keep set. A strictly
// newer date displaces the incumbent; on an equal or older date the
// incumbent stays. Ties therefore go to whichever chart arrived first.
func (d *Deduper) Add(chart models.Chart) {
	old, ok := d.keep[chart.Group]
	if !ok {
		d.logger.Debug("Found new file", zap.Stringer("chart", chart))
		d.keep[chart.Group] = chart
		return
	}

	if chart.Newer(old) {
		d.logger.Debug("Replacing existing", zap.Stringer("old", old), zap.Stringer("new", chart))
		d.keep[chart.Group] = chart
		d.remove[old.Path] = struct{}{}
	} else {
		d.logger.Debug("Not replacing existing", zap.Stringer("old", old), zap.Stringer("new", chart))
		d.remove[chart.Path] = struct{}{}
	}
}

// Kept returns the winning charts, ordered by group key.
func (d *Deduper) Kept() []models.Chart {
	kept := make([]models.Chart, 0, len(d.keep))
	for _, c := range d.keep {
		kept = append(kept, c)
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Group < kept[j].Group
	})

	return kept
}

// Removals returns the superseded paths in sorted order.
func (d *Deduper) Removals() []string {
	paths := make([]string, 0, len(d.remove))
	for p := range d.remove {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}
