package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// GetByUserAndDate returns nil when the employee has no row for date
	GetByUserAndDate(ctx context.Context, userID int64, date time.Time) (*Attendance, error)

	// CheckIn stamps check-in and marks the day Present. It creates the row when absent and
	// reports false when a check-in already exists.
	CheckIn(ctx context.Context, userID int64, date time.Time, at time.Time) (bool, error)

	// CheckOut stamps check-out and stores status. It reports false when the row was
	// already checked out.
	CheckOut(ctx context.Context, id int64, at time.Time, status Status) (bool, error)

	// MarkLeave upserts a Leave row for each date, overwriting any prior status
	MarkLeave(ctx context.Context, userID int64, dates []time.Time) error

	// List returns rows newest first, joined with the employee's name and email
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)

	// StatusesOn returns the status of every row dated date keyed by user id
	StatusesOn(ctx context.Context, date time.Time) (map[int64]Status, error)
}
