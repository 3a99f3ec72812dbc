package models

import (
	"fmt"
	"time"
)

// Chart is a single chart tile discovered on disk. Group identifies the
// logical tile across capture dates: two charts with the same Group are the
// same slot, regardless of Date or Path.
type Chart struct {
	Group string
	Date  time.Time
	Path  string
	Err   error
}

func (c Chart) String() string {
	return fmt.Sprintf("%s/%s", c.Group, c.Date.Format("2006-01-02"))
}

// SameSlot reports whether two charts occupy the same slot. Only Group
// matters; callers must not fall back to structural equality.
func (c Chart) SameSlot(other Chart) bool {
	return c.Group == other.Group
}

// Newer reports whether c is strictly more recent than other. Equal dates
// return false, so an incumbent chart wins ties.
func (c Chart) Newer(other Chart) bool {
	return c.Date.After(other.Date)
}
