package track

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"punch.cli/internal/api"
)

// rangeRe matches "H[:MM]-H[:MM]" on a 24-hour clock, minutes optional.
var rangeRe = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?-(\d{1,2})(?::(\d{2}))?$`)

// TimeOfDay is a local wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// At anchors the wall-clock time on a calendar date in the local timezone.
// The UTC offset is resolved for that specific instant, so conversions stay
// correct across daylight-saving transitions.
func (t TimeOfDay) At(date api.Date) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, time.Local)
}

// TimeRange is a user-entered work interval for one day, start and end as
// wall-clock times.
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// ParseError is a time range that does not satisfy the expected
// "H[:MM]-H[:MM]" grammar.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid time range %q: %s", e.Input, e.Reason)
}

// ParseRange parses one shift range like "8:30-17:15" or "9-17". Hours run
// 0-23, minutes default to 0. The start must precede the end.
func ParseRange(s string) (TimeRange, error) {
	m := rangeRe.FindStringSubmatch(s)
	if m == nil {
		return TimeRange{}, &ParseError{Input: s, Reason: "must be a range, for example 8:30-17:15"}
	}
	start, err := timeOfDay(m[1], m[2])
	if err != nil {
		return TimeRange{}, &ParseError{Input: s, Reason: err.Error()}
	}
	end, err := timeOfDay(m[3], m[4])
	if err != nil {
		return TimeRange{}, &ParseError{Input: s, Reason: err.Error()}
	}
	if !start.before(end) {
		return TimeRange{}, &ParseError{Input: s, Reason: "start must be before end"}
	}
	return TimeRange{Start: start, End: end}, nil
}

func timeOfDay(hour, minute string) (TimeOfDay, error) {
	h, _ := strconv.Atoi(hour)
	if h > 23 {
		return TimeOfDay{}, fmt.Errorf("hour %d out of range", h)
	}
	t := TimeOfDay{Hour: h}
	if minute != "" {
		m, _ := strconv.Atoi(minute)
		if m > 59 {
			return TimeOfDay{}, fmt.Errorf("minute %d out of range", m)
		}
		t.Minute = m
	}
	return t, nil
}

func (t TimeOfDay) before(other TimeOfDay) bool {
	return t.Hour*60+t.Minute < other.Hour*60+other.Minute
}
