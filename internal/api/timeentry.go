package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Entry sources as the platform expects them: "WEB" for submitted manual
// entries, "WEB_CLOCK" for live clock operations.
const (
	SourceWeb      = "WEB"
	SourceWebClock = "WEB_CLOCK"
)

// NewEntry is the outbound payload for a manually submitted day: an ordered
// list of shifts and an ordered list of breaks, all with absolute
// timestamps. Company and role metadata are attached by CreateEntry.
type NewEntry struct {
	Shifts  []NewShift `json:"jobShifts"`
	Breaks  []NewBreak `json:"breaks"`
	Source  string     `json:"source"`
	Company string     `json:"company,omitempty"`
	Role    string     `json:"role,omitempty"`
}

type NewShift struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type NewBreak struct {
	BreakTypeID string    `json:"companyBreakType"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// AddShift appends a shift interval.
func (e *NewEntry) AddShift(start, end time.Time) {
	e.Shifts = append(e.Shifts, NewShift{StartTime: start, EndTime: end})
}

// AddBreak appends a break interval tagged with a company break type.
func (e *NewEntry) AddBreak(breakTypeID string, start, end time.Time) {
	e.Breaks = append(e.Breaks, NewBreak{BreakTypeID: breakTypeID, StartTime: start, EndTime: end})
}

// String renders a one-line preview like
// "Fri 20 Jan 08:00-17:00 (Breaks 12:00-12:30)" for confirmation prompts.
func (e *NewEntry) String() string {
	if len(e.Shifts) == 0 {
		return "empty entry"
	}
	shift := e.Shifts[0]
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s-%s",
		shift.StartTime.Format("Mon 02 Jan"),
		shift.StartTime.Format("15:04"),
		shift.EndTime.Format("15:04"))
	if len(e.Breaks) > 0 {
		parts := make([]string, len(e.Breaks))
		for i, br := range e.Breaks {
			parts[i] = br.StartTime.Format("15:04") + "-" + br.EndTime.Format("15:04")
		}
		fmt.Fprintf(&b, " (Breaks %s)", strings.Join(parts, ", "))
	}
	return b.String()
}

// Entry is a time entry as confirmed by the platform.
type Entry struct {
	ID               string       `json:"id"`
	ActivePolicy     ActivePolicy `json:"activePolicy"`
	StartTime        time.Time    `json:"startTime"`
	EndTime          *time.Time   `json:"endTime"`
	Breaks           []EntryBreak `json:"breaks"`
	RegularHours     Hours        `json:"regularHours"`
	UnpaidBreakHours Hours        `json:"unpaidBreakHours"`
}

type EntryBreak struct {
	BreakTypeID string     `json:"companyBreakType"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
}

// CurrentBreak returns the break without an end time, if any.
func (e *Entry) CurrentBreak() *EntryBreak {
	for i := range e.Breaks {
		if e.Breaks[i].EndTime == nil {
			return &e.Breaks[i]
		}
	}
	return nil
}

// Duration returns the break's length, or false while it is still running.
func (b *EntryBreak) Duration() (time.Duration, bool) {
	if b.EndTime == nil {
		return 0, false
	}
	return b.EndTime.Sub(b.StartTime), true
}

// Hours is a fractional hour count the platform serializes as a JSON string.
type Hours float64

func (h *Hours) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parsing hours: %w", err)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parsing hours %q: %w", s, err)
	}
	*h = Hours(f)
	return nil
}

// CreateEntry submits a manual entry in a single atomic call and returns the
// entry as the platform recorded it.
func (s *Session) CreateEntry(ctx context.Context, entry *NewEntry) (*Entry, error) {
	payload := *entry
	payload.Source = SourceWeb
	payload.Company = s.company
	payload.Role = s.role

	var created Entry
	if err := s.Post(ctx, "time_tracking/api/time_entries", &payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CurrentEntry returns the running time entry, or nil when clocked out. The
// endpoint filters for entries with no end time.
func (s *Session) CurrentEntry(ctx context.Context) (*Entry, error) {
	query := url.Values{"endTime": {""}}
	var entries []Entry
	if err := s.Get(ctx, "time_tracking/api/time_entries", query, &entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// StartClock clocks the session's role in.
func (s *Session) StartClock(ctx context.Context) (*Entry, error) {
	body := map[string]string{"source": SourceWebClock, "role": s.role}
	var entry Entry
	if err := s.Post(ctx, "time_tracking/api/time_entries/start_clock", body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// StopClock clocks the given entry out.
func (s *Session) StopClock(ctx context.Context, id string) (*Entry, error) {
	body := map[string]string{"source": SourceWebClock}
	var entry Entry
	if err := s.Post(ctx, "time_tracking/api/time_entries/"+id+"/stop_clock", body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// StartBreak starts a break of the given type on a running entry.
func (s *Session) StartBreak(ctx context.Context, id, breakTypeID string) (*Entry, error) {
	body := map[string]string{"source": SourceWebClock, "break_type": breakTypeID}
	var entry Entry
	if err := s.Post(ctx, "time_tracking/api/time_entries/"+id+"/start_break", body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// EndBreak ends the running break on an entry.
func (s *Session) EndBreak(ctx context.Context, id, breakTypeID string) (*Entry, error) {
	body := map[string]string{"source": SourceWebClock, "break_type": breakTypeID}
	var entry Entry
	if err := s.Post(ctx, "time_tracking/api/time_entries/"+id+"/end_break", body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
