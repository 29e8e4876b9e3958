package api

import (
	"context"
	"net/url"
)

// HolidayYear is one year's bucket of the company holiday calendar.
type HolidayYear struct {
	Year     int       `json:"year"`
	Holidays []Holiday `json:"holidays"`
}

// Holiday is a single public-holiday record; multi-day holidays span
// [StartDate, EndDate] inclusive.
type Holiday struct {
	Name                 string `json:"name"`
	Kind                 string `json:"type"`
	StartDate            Date   `json:"startDate"`
	EndDate              Date   `json:"endDate"`
	CountsTowardOvertime bool   `json:"shouldCountTowardHoursWorkedForOvertime"`
}

// LeaveRequest is a time-off request; only APPROVED ones are ever fetched
// here.
type LeaveRequest struct {
	IsDeleted     *bool  `json:"isDeleted"`
	StartDate     Date   `json:"startDate"`
	EndDate       Date   `json:"endDate"`
	Status        string `json:"status"`
	LeaveTypeName string `json:"leaveTypeName"`
}

// HolidayCalendar fetches the company holiday calendar, bucketed by year.
func (s *Session) HolidayCalendar(ctx context.Context) ([]HolidayYear, error) {
	body := map[string]bool{"allow_time_admin": false, "only_payable": false}
	var calendar []HolidayYear
	if err := s.Post(ctx, "pto/api/get_holiday_calendar/", body, &calendar); err != nil {
		return nil, err
	}
	return calendar, nil
}

// ApprovedLeaveRequests fetches the session role's leave requests with
// APPROVED status.
func (s *Session) ApprovedLeaveRequests(ctx context.Context) ([]LeaveRequest, error) {
	query := url.Values{"role": {s.role}, "status": {"APPROVED"}}
	var requests []LeaveRequest
	if err := s.Get(ctx, "pto/api/leave_requests/", query, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}
