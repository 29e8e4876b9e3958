package track_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"punch.cli/internal/api"
	"punch.cli/internal/track"
)

// fakePlatform implements track.Platform against canned data and records
// what gets submitted.
type fakePlatform struct {
	fakeCalendar

	policy    *api.BreakPolicy
	policyErr error

	created *api.NewEntry
}

func (f *fakePlatform) ActiveBreakPolicy(ctx context.Context) (*api.ActivePolicy, error) {
	if f.policyErr != nil {
		return nil, f.policyErr
	}
	return &api.ActivePolicy{TimePolicy: "tp-1", BreakPolicy: "bp-1"}, nil
}

func (f *fakePlatform) FetchBreakPolicy(ctx context.Context, id string) (*api.BreakPolicy, error) {
	if f.policyErr != nil {
		return nil, f.policyErr
	}
	return f.policy, nil
}

func (f *fakePlatform) CreateEntry(ctx context.Context, entry *api.NewEntry) (*api.Entry, error) {
	f.created = entry
	start := entry.Shifts[0].StartTime
	end := entry.Shifts[0].EndTime
	return &api.Entry{
		ID:        "entry-1",
		StartTime: start,
		EndTime:   &end,
	}, nil
}

func policyWithManualType(id string) *api.BreakPolicy {
	return &api.BreakPolicy{
		ID: "bp-1",
		BreakTypes: []api.BreakType{
			{ID: "deleted-type", Deleted: true, Description: "Old break"},
			{ID: id, Description: "Lunch Break - Manually clock in/out"},
		},
		EligibleTypes: []api.EligibleBreakType{
			{BreakTypeID: "deleted-type", AllowManual: true},
			{BreakTypeID: id, AllowManual: true},
		},
	}
}

func mustRanges(t *testing.T, inputs ...string) []track.TimeRange {
	t.Helper()
	ranges := make([]track.TimeRange, 0, len(inputs))
	for _, s := range inputs {
		r, err := track.ParseRange(s)
		if err != nil {
			t.Fatalf("ParseRange(%q): %v", s, err)
		}
		ranges = append(ranges, r)
	}
	return ranges
}

func TestSubmitManualSplitDay(t *testing.T) {
	// The user already split the day, so the gap becomes the explicit break
	// and no statutory break needs inserting.
	p := &fakePlatform{policy: policyWithManualType("break-1")}
	date := api.NewDate(2023, time.June, 7)

	_, err := track.SubmitManual(context.Background(), p, date, mustRanges(t, "8:30-14:00", "15:30-17:00"), false)
	if err != nil {
		t.Fatalf("SubmitManual: %v", err)
	}
	entry := p.created
	if entry == nil {
		t.Fatal("no entry submitted")
	}
	if len(entry.Shifts) != 1 {
		t.Fatalf("submitted %d shifts, want 1", len(entry.Shifts))
	}
	shift := entry.Shifts[0]
	if got := shift.StartTime.Format("15:04"); got != "08:30" {
		t.Errorf("shift start = %s, want 08:30", got)
	}
	if got := shift.EndTime.Format("15:04"); got != "17:00" {
		t.Errorf("shift end = %s, want 17:00", got)
	}
	if len(entry.Breaks) != 1 {
		t.Fatalf("submitted %d breaks, want 1", len(entry.Breaks))
	}
	br := entry.Breaks[0]
	if br.BreakTypeID != "break-1" {
		t.Errorf("break type = %q, want %q", br.BreakTypeID, "break-1")
	}
	if got := br.StartTime.Format("15:04"); got != "14:00" {
		t.Errorf("break start = %s, want 14:00", got)
	}
	if got := br.EndTime.Format("15:04"); got != "15:30" {
		t.Errorf("break end = %s, want 15:30", got)
	}
}

func TestSubmitManualInsertsStatutoryBreak(t *testing.T) {
	p := &fakePlatform{policy: policyWithManualType("break-1")}
	date := api.NewDate(2023, time.June, 7)

	_, err := track.SubmitManual(context.Background(), p, date, mustRanges(t, "8-17"), false)
	if err != nil {
		t.Fatalf("SubmitManual: %v", err)
	}
	entry := p.created
	if len(entry.Breaks) != 1 {
		t.Fatalf("submitted %d breaks, want 1", len(entry.Breaks))
	}
	br := entry.Breaks[0]
	if d := br.EndTime.Sub(br.StartTime); d != 30*time.Minute {
		t.Errorf("statutory break = %v, want 30m", d)
	}
	// Centered in the 08:00-17:00 shift.
	if got := br.StartTime.Format("15:04"); got != "12:15" {
		t.Errorf("break start = %s, want 12:15", got)
	}
}

func TestSubmitManualDatesAnchored(t *testing.T) {
	p := &fakePlatform{policy: policyWithManualType("break-1")}
	date := api.NewDate(2023, time.June, 7)

	_, err := track.SubmitManual(context.Background(), p, date, mustRanges(t, "9-12"), false)
	if err != nil {
		t.Fatalf("SubmitManual: %v", err)
	}
	shift := p.created.Shifts[0]
	y, m, d := shift.StartTime.Date()
	if y != 2023 || m != time.June || d != 7 {
		t.Errorf("shift anchored on %04d-%02d-%02d, want 2023-06-07", y, m, d)
	}
}

func TestSubmitManualCheckRejectsSunday(t *testing.T) {
	p := &fakePlatform{policy: policyWithManualType("break-1")}
	date := api.NewDate(2023, time.June, 11) // a Sunday

	_, err := track.SubmitManual(context.Background(), p, date, mustRanges(t, "8-17"), true)
	var nwd *track.NoWorkingDayError
	if !errors.As(err, &nwd) {
		t.Fatalf("SubmitManual error = %v, want *NoWorkingDayError", err)
	}
	if nwd.Outcome.Kind != track.Weekend || nwd.Outcome.Weekday != time.Sunday {
		t.Errorf("outcome = %+v, want Weekend(Sunday)", nwd.Outcome)
	}
	if p.created != nil {
		t.Error("entry was submitted despite failed workday check")
	}
}

func TestSubmitManualNoManualBreakType(t *testing.T) {
	policy := &api.BreakPolicy{
		ID:            "bp-1",
		BreakTypes:    []api.BreakType{{ID: "bt-1", Description: "Policy break"}},
		EligibleTypes: []api.EligibleBreakType{{BreakTypeID: "bt-1", AllowManual: false}},
	}
	p := &fakePlatform{policy: policy}
	date := api.NewDate(2023, time.June, 7)

	_, err := track.SubmitManual(context.Background(), p, date, mustRanges(t, "8-17"), false)
	if !errors.Is(err, track.ErrNoManualBreakType) {
		t.Fatalf("SubmitManual error = %v, want ErrNoManualBreakType", err)
	}
	if p.created != nil {
		t.Error("entry was submitted without a manual break type")
	}
}

func TestSubmitManualPolicyFetchFailure(t *testing.T) {
	wantErr := errors.New("policy down")
	p := &fakePlatform{policyErr: wantErr}
	date := api.NewDate(2023, time.June, 7)

	_, err := track.SubmitManual(context.Background(), p, date, mustRanges(t, "8-17"), false)
	if !errors.Is(err, wantErr) {
		t.Fatalf("SubmitManual error = %v, want %v", err, wantErr)
	}
	if p.created != nil {
		t.Error("entry was submitted despite policy failure")
	}
}

func TestSubmitManualUnorderedRanges(t *testing.T) {
	p := &fakePlatform{policy: policyWithManualType("break-1")}
	date := api.NewDate(2023, time.June, 7)

	_, err := track.SubmitManual(context.Background(), p, date, mustRanges(t, "13-17", "8-12"), false)
	if !errors.Is(err, track.ErrUnorderedRanges) {
		t.Fatalf("SubmitManual error = %v, want ErrUnorderedRanges", err)
	}
	if p.created != nil {
		t.Error("entry was submitted despite unordered ranges")
	}
}
