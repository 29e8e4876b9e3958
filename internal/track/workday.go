package track

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"punch.cli/internal/api"
)

// Calendar is the slice of the remote API the workday classifier reads.
// *api.Session satisfies it.
type Calendar interface {
	HolidayCalendar(ctx context.Context) ([]api.HolidayYear, error)
	ApprovedLeaveRequests(ctx context.Context) ([]api.LeaveRequest, error)
}

// OutcomeKind classifies a calendar date.
type OutcomeKind int

const (
	WorkingDay OutcomeKind = iota
	Weekend
	Holiday
	Leave
)

// Outcome is the classification of one date. Weekday is set for Weekend
// outcomes, Holiday for Holiday outcomes.
type Outcome struct {
	Kind    OutcomeKind
	Weekday time.Weekday
	Holiday *api.Holiday
}

func (o Outcome) String() string {
	switch o.Kind {
	case Weekend:
		return fmt.Sprintf("it is a weekend (%s)", o.Weekday)
	case Holiday:
		return fmt.Sprintf("it is a holiday (%s)", o.Holiday.Name)
	case Leave:
		return "you are on approved leave"
	default:
		return "working day"
	}
}

// ClassifyWorkday decides whether date is workable. The holiday and leave
// lookups run concurrently; the weekend check is local. Results are joined
// in fixed precedence weekend > holiday > leave > working day, so a holiday
// falling on a Saturday reports as weekend and a leave day on a holiday as
// holiday. A failed lookup only surfaces when its result is actually needed
// by that precedence; lookups made irrelevant by a higher-precedence hit are
// discarded.
func ClassifyWorkday(ctx context.Context, cal Calendar, date api.Date) (Outcome, error) {
	type holidayResult struct {
		holiday *api.Holiday
		err     error
	}
	type leaveResult struct {
		onLeave bool
		err     error
	}

	// Buffered so abandoned lookups can finish and be collected.
	holidayc := make(chan holidayResult, 1)
	leavec := make(chan leaveResult, 1)

	go func() {
		calendar, err := cal.HolidayCalendar(ctx)
		if err != nil {
			holidayc <- holidayResult{err: err}
			return
		}
		holidayc <- holidayResult{holiday: holidayOn(calendar, date)}
	}()
	go func() {
		requests, err := cal.ApprovedLeaveRequests(ctx)
		if err != nil {
			leavec <- leaveResult{err: err}
			return
		}
		leavec <- leaveResult{onLeave: onLeave(requests, date)}
	}()

	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return classified(date, Outcome{Kind: Weekend, Weekday: wd}), nil
	}
	hr := <-holidayc
	if hr.err != nil {
		return Outcome{}, fmt.Errorf("checking holiday calendar: %w", hr.err)
	}
	if hr.holiday != nil {
		return classified(date, Outcome{Kind: Holiday, Holiday: hr.holiday}), nil
	}
	lr := <-leavec
	if lr.err != nil {
		return Outcome{}, fmt.Errorf("checking leave requests: %w", lr.err)
	}
	if lr.onLeave {
		return classified(date, Outcome{Kind: Leave}), nil
	}
	return classified(date, Outcome{Kind: WorkingDay}), nil
}

func classified(date api.Date, outcome Outcome) Outcome {
	log.Debug().Stringer("date", date).Str("outcome", outcome.String()).Msg("workday classified")
	return outcome
}

// holidayOn finds the holiday record containing date, looking only at the
// bucket for date's year.
func holidayOn(calendar []api.HolidayYear, date api.Date) *api.Holiday {
	for _, year := range calendar {
		if year.Year != date.Year() {
			continue
		}
		for i := range year.Holidays {
			h := &year.Holidays[i]
			if !date.Before(h.StartDate.Time) && !date.After(h.EndDate.Time) {
				return h
			}
		}
	}
	return nil
}

// onLeave reports whether any approved leave span contains date, inclusive
// on both ends.
func onLeave(requests []api.LeaveRequest, date api.Date) bool {
	for _, r := range requests {
		if !date.Before(r.StartDate.Time) && !date.After(r.EndDate.Time) {
			return true
		}
	}
	return false
}
