package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id int64) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, error)
	ListPending(ctx context.Context) ([]LeaveRequest, error)
	// UpdateStatus moves a pending request to status and reports false when the request
	// had already left Pending.
	UpdateStatus(ctx context.Context, id int64, status Status, adminComment *string) (bool, error)
	HasApprovedOverlap(ctx context.Context, userID int64, start, end time.Time) (bool, error)
	// ApprovedUsersOn returns the users with approved leave covering date
	ApprovedUsersOn(ctx context.Context, date time.Time) (map[int64]bool, error)
}
