package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusHalfDay Status = "Half-day"
	StatusLeave   Status = "Leave"
)

// HalfDayThreshold is the minimum time between check-in and check-out for a full day.
const HalfDayThreshold = 4 * time.Hour

// Attendance is one row per employee per calendar day.
type Attendance struct {
	ID        int64
	UserID    int64
	Date      time.Time
	CheckIn   *time.Time
	CheckOut  *time.Time
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	EmployeeName  *string
	EmployeeEmail *string
}

func (a *Attendance) HasCheckedIn() bool {
	return a.CheckIn != nil
}

func (a *Attendance) HasCheckedOut() bool {
	return a.CheckOut != nil
}

// WorkDuration is zero until both timestamps are set.
func (a *Attendance) WorkDuration() time.Duration {
	if a.CheckIn == nil || a.CheckOut == nil {
		return 0
	}
	return a.CheckOut.Sub(*a.CheckIn)
}

// StatusAfterCheckOut derives the status once an employee leaves. Short days become
// Half-day, anything else keeps the current status.
func StatusAfterCheckOut(current Status, checkIn, checkOut time.Time) Status {
	if checkOut.Sub(checkIn) < HalfDayThreshold {
		return StatusHalfDay
	}
	return current
}

// Day truncates t to midnight in its own location and returns it as a UTC date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
