package scheduling

import (
	"iter"
	"time"
)

// CandidateStarts returns the legal start instants for the request, stepping by
// the request granularity from request.Start while start+duration still fits
// inside the search horizon. The sequence is lazy, finite, and restartable:
// ranging over it again replays the walk from the beginning.
//
// The caller is expected to have normalized the request; a horizon shorter than
// the duration simply yields an empty sequence.
func CandidateStarts(req AppointmentRequest, clinic ClinicSchedule) iter.Seq[time.Time] {
	duration := req.Duration()
	step := req.Step()

	return func(yield func(time.Time) bool) {
		for current := req.Start; !current.Add(duration).After(req.End); current = current.Add(step) {
			end := current.Add(duration)
			if !slotAllowedByClinic(clinic, current, end) {
				continue
			}
			if !yield(current) {
				return
			}
		}
	}
}

// slotAllowedByClinic applies the clinic-wide gates: the slot must sit inside
// an operating window when any are configured, and must not overlap a blocked
// window.
func slotAllowedByClinic(clinic ClinicSchedule, start, end time.Time) bool {
	if len(clinic.OperatingWindows) > 0 {
		inside := false
		for _, w := range clinic.OperatingWindows {
			if w.Contains(start, end) {
				inside = true
				break
			}
		}
		if !inside {
			return false
		}
	}
	for _, w := range clinic.BlockedWindows {
		if w.Overlaps(start, end) {
			return false
		}
	}
	return true
}
