// Package scheduling implements the feasibility search for appointment slots:
// time window primitives, per-resource availability, candidate start generation,
// and the exhaustive (doctor, room, start) enumeration.
package scheduling

import (
	"errors"
	"time"
)

var ErrInvalidWindow = errors.New("time window end must be after start")

// TimeWindow is an immutable window of time. Containment is inclusive on both
// ends; overlap is strict, so windows that merely touch do not overlap.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if !end.After(start) {
		return TimeWindow{}, ErrInvalidWindow
	}
	return TimeWindow{Start: start, End: end}, nil
}

// Contains reports whether [start, end] lies entirely inside the window.
func (w TimeWindow) Contains(start, end time.Time) bool {
	return !w.Start.After(start) && !end.After(w.End)
}

// Overlaps reports whether [start, end] strictly intersects the window.
func (w TimeWindow) Overlaps(start, end time.Time) bool {
	return start.Before(w.End) && end.After(w.Start)
}
