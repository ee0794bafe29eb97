package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Record dispatches a check-in or check-out for the authenticated employee
	Record(ctx context.Context, req RecordRequest) (AttendanceResponse, error)

	// CheckIn opens today's attendance for the authenticated employee
	CheckIn(ctx context.Context) (AttendanceResponse, error)

	// CheckOut closes today's attendance for the authenticated employee
	CheckOut(ctx context.Context) (AttendanceResponse, error)

	// ListAttendance returns own rows for employees, any rows for Admin/HR
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)

	// ExportAttendance renders ListAttendance as an xlsx workbook (Admin/HR)
	ExportAttendance(ctx context.Context, filter AttendanceFilter) ([]byte, error)
}
