package track

import (
	"context"
	"errors"
	"time"

	"punch.cli/internal/api"
)

// Platform is the slice of the remote API the manual-entry synthesizer
// needs. *api.Session satisfies it.
type Platform interface {
	Calendar
	ActiveBreakPolicy(ctx context.Context) (*api.ActivePolicy, error)
	FetchBreakPolicy(ctx context.Context, id string) (*api.BreakPolicy, error)
	CreateEntry(ctx context.Context, entry *api.NewEntry) (*api.Entry, error)
}

// ErrNoManualBreakType signals a break policy without a usable manual break
// type; statutory breaks cannot be tagged, so nothing is submitted.
var ErrNoManualBreakType = errors.New("break policy has no manual break type")

// ErrUnorderedRanges rejects multi-range input that is not strictly
// chronological, since the flattened boundary sequence would be meaningless.
var ErrUnorderedRanges = errors.New("time ranges must be chronological and non-overlapping")

// NoWorkingDayError aborts a submission because the date was classified as
// not workable. Outcome carries the specific reason for display.
type NoWorkingDayError struct {
	Outcome Outcome
}

func (e *NoWorkingDayError) Error() string {
	return e.Outcome.String()
}

// PrepareManual builds the entry payload for a day without submitting it:
// it resolves the manual break type from the active break policy
// (concurrently with the optional workday check), anchors the user's wall
// clock ranges on date, and splices in statutory breaks. Callers hand the
// result to CreateEntry, typically after a confirmation prompt.
func PrepareManual(ctx context.Context, p Platform, date api.Date, ranges []TimeRange, check bool) (*api.NewEntry, error) {
	if err := validateOrder(ranges); err != nil {
		return nil, err
	}

	type policyResult struct {
		policy *api.BreakPolicy
		err    error
	}
	policyc := make(chan policyResult, 1)
	go func() {
		active, err := p.ActiveBreakPolicy(ctx)
		if err != nil {
			policyc <- policyResult{err: err}
			return
		}
		policy, err := p.FetchBreakPolicy(ctx, active.BreakPolicy)
		policyc <- policyResult{policy: policy, err: err}
	}()

	if check {
		outcome, err := ClassifyWorkday(ctx, p, date)
		if err != nil {
			return nil, err
		}
		if outcome.Kind != WorkingDay {
			return nil, &NoWorkingDayError{Outcome: outcome}
		}
	}

	// Flat sequence of moments where work starts or stops. The offset is
	// resolved per instant inside At.
	events := make([]time.Time, 0, 2*len(ranges))
	for _, r := range ranges {
		events = append(events, r.Start.At(date), r.End.At(date))
	}
	events = PlaceBreaks(events)

	pr := <-policyc
	if pr.err != nil {
		return nil, pr.err
	}
	breakType := pr.policy.ManualBreakType()
	if breakType == nil {
		return nil, ErrNoManualBreakType
	}

	entry := &api.NewEntry{Source: api.SourceWeb}
	entry.AddShift(events[0], events[len(events)-1])
	for i := 1; i+1 < len(events)-1; i += 2 {
		entry.AddBreak(breakType.ID, events[i], events[i+1])
	}
	return entry, nil
}

// SubmitManual prepares and submits a manual entry for date in one step.
// On success it returns the entry as confirmed by the platform.
func SubmitManual(ctx context.Context, p Platform, date api.Date, ranges []TimeRange, check bool) (*api.Entry, error) {
	entry, err := PrepareManual(ctx, p, date, ranges, check)
	if err != nil {
		return nil, err
	}
	return p.CreateEntry(ctx, entry)
}

func validateOrder(ranges []TimeRange) error {
	if len(ranges) == 0 {
		return errors.New("at least one time range is required")
	}
	for i := 1; i < len(ranges); i++ {
		if !ranges[i-1].End.before(ranges[i].Start) {
			return ErrUnorderedRanges
		}
	}
	return nil
}
