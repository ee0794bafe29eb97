package leave

import (
	"context"
)

type LeaveService interface {
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, id int64) (LeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, filter LeaveFilter) ([]LeaveRequestResponse, error)
	ListPendingRequests(ctx context.Context) ([]LeaveRequestResponse, error)
	// DecideLeaveRequest approves or rejects a pending request (Admin). Approval marks
	// every covered day as Leave in attendance.
	DecideLeaveRequest(ctx context.Context, id int64, req DecisionRequest) (LeaveRequestResponse, error)
}
