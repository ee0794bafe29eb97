package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("please check in first")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrInvalidAction     = errors.New(`invalid action. Use "checkin" or "checkout"`)

	ErrAttendanceNotFound = errors.New("attendance record not found")
)
