package track

import "time"

// MinimumBreak returns the statutory minimum break owed for a continuous
// shift of the given length under German labor law (ArbZG §4): nothing up to
// six hours, then at least 15 and up to 30 minutes growing with the excess,
// plus up to another 15 minutes for time beyond nine hours.
func MinimumBreak(shift time.Duration) time.Duration {
	var dur time.Duration
	if shift > 6*time.Hour {
		dur = max(min(shift-6*time.Hour, 30*time.Minute), 15*time.Minute)
	}
	if shift > 9*time.Hour {
		dur += min(shift-9*time.Hour, 15*time.Minute)
	}
	return dur
}

// PlaceBreaks splices statutory breaks into a flat, ordered sequence of work
// start/stop boundaries. For each consecutive (start, end) pair owing a
// break, the break is centered on the pair's midpoint and its two boundaries
// are inserted between them. In the result the first and last elements are
// the true shift boundaries and interior pairs are breaks.
func PlaceBreaks(events []time.Time) []time.Time {
	out := make([]time.Time, 0, len(events))
	for i := 0; i+1 < len(events); i += 2 {
		start, end := events[i], events[i+1]
		work := end.Sub(start)
		if brk := MinimumBreak(work); brk > 0 {
			breakStart := start.Add(work/2 - brk/2)
			out = append(out, start, breakStart, breakStart.Add(brk), end)
		} else {
			out = append(out, start, end)
		}
	}
	return out
}
