package leave

import (
	"time"
)

type Type string

const (
	TypePaid   Type = "Paid"
	TypeSick   Type = "Sick"
	TypeUnpaid Type = "Unpaid"
)

// Types lists every valid leave type.
var Types = []string{string(TypePaid), string(TypeSick), string(TypeUnpaid)}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

type LeaveRequest struct {
	ID           int64
	UserID       int64
	LeaveType    Type
	StartDate    time.Time
	EndDate      time.Time
	Reason       *string
	Status       Status
	AdminComment *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	UserName    *string
	UserEmail   *string
	UserLoginID *string
}

// IsPending reports whether the request still awaits a decision. Approved and Rejected
// are terminal.
func (lr *LeaveRequest) IsPending() bool {
	return lr.Status == StatusPending
}

// Days returns the number of calendar days in the window, inclusive.
func (lr *LeaveRequest) Days() int {
	return int(lr.EndDate.Sub(lr.StartDate).Hours()/24) + 1
}

// Dates lists every calendar date in the window, inclusive.
func (lr *LeaveRequest) Dates() []time.Time {
	return DatesInRange(lr.StartDate, lr.EndDate)
}

// DatesInRange returns each date from start to end inclusive; empty when end < start.
func DatesInRange(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// DefaultMaxDays caps a single request when the policy sets no positive limit.
const DefaultMaxDays = 366

// Policy holds the optional business rules applied when a request is submitted.
type Policy struct {
	EnforceOverlap bool
	EnforceNotice  bool
	PaidNoticeDays int
	SickNoticeDays int
	MaxDays        int
}

// DefaultPolicy rejects overlaps, skips notice checks and caps a request at a year.
func DefaultPolicy() Policy {
	return Policy{
		EnforceOverlap: true,
		PaidNoticeDays: 2,
		SickNoticeDays: 1,
		MaxDays:        DefaultMaxDays,
	}
}

// MaxWindow is the longest request allowed, in days. A non-positive MaxDays falls back
// to DefaultMaxDays so approval never writes an unbounded number of attendance rows.
func (p Policy) MaxWindow() int {
	if p.MaxDays <= 0 {
		return DefaultMaxDays
	}
	return p.MaxDays
}

// NoticeDays is the minimum number of days between today and the start date for t.
func (p Policy) NoticeDays(t Type) int {
	switch t {
	case TypePaid:
		return p.PaidNoticeDays
	case TypeSick:
		return p.SickNoticeDays
	default:
		return 0
	}
}
