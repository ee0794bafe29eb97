package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/notification"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
)

// Notifier delivers notifications to a user.
type Notifier interface {
	Notify(ctx context.Context, req notification.CreateNotificationRequest) error
}

type LeaveServiceImpl struct {
	requests *RequestService
	notifier Notifier
	loc      *time.Location
	now      func() time.Time
}

func NewLeaveService(requestService *RequestService, notifier Notifier, loc *time.Location) *LeaveServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &LeaveServiceImpl{
		requests: requestService,
		notifier: notifier,
		loc:      loc,
		now:      time.Now,
	}
}

// CreateLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !user.HasPermission(principal.Role, user.PermissionLeaveCreate) {
		return leave.LeaveRequestResponse{}, user.ErrEmployeeAccessRequired
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	today := attendance.Day(l.now().In(l.loc))
	created, err := l.requests.Submit(ctx, principal.UserID, req, today)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(created), nil
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, id int64) (leave.LeaveRequestResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := l.requests.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !principal.CanAccess(request.UserID) {
		return leave.LeaveRequestResponse{}, user.ErrAccessDenied
	}

	return leave.NewLeaveRequestResponse(request), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequestResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	if !user.CanViewAllRecords(principal.Role) {
		if filter.UserID != 0 && filter.UserID != principal.UserID {
			return nil, user.ErrAccessDenied
		}
		filter.UserID = principal.UserID
	}

	requests, err := l.requests.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toResponses(requests), nil
}

// ListPendingRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListPendingRequests(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !user.CanViewAllRecords(principal.Role) {
		return nil, user.ErrAdminOrHRAccessRequired
	}

	requests, err := l.requests.LeaveRequestRepository.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return toResponses(requests), nil
}

// DecideLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) DecideLeaveRequest(ctx context.Context, id int64, req leave.DecisionRequest) (leave.LeaveRequestResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !user.CanApproveLeave(principal.Role) {
		return leave.LeaveRequestResponse{}, user.ErrAdminAccessRequired
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	decided, err := l.requests.Decide(ctx, id, leave.Status(req.Status), req.AdminComment)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	l.notifyDecision(ctx, decided)
	return leave.NewLeaveRequestResponse(decided), nil
}

// notifyDecision runs after commit; a delivery failure does not undo the decision.
func (l *LeaveServiceImpl) notifyDecision(ctx context.Context, request leave.LeaveRequest) {
	if l.notifier == nil {
		return
	}

	link := fmt.Sprintf("/api/v1/leave/%d", request.ID)
	err := l.notifier.Notify(ctx, notification.CreateNotificationRequest{
		UserID: request.UserID,
		Type:   notification.TypeLeaveUpdate,
		Title:  fmt.Sprintf("Leave request %s", request.Status),
		Message: fmt.Sprintf("Your %s leave from %s to %s was %s.",
			request.LeaveType,
			request.StartDate.Format("2006-01-02"),
			request.EndDate.Format("2006-01-02"),
			lowerStatus(request.Status),
		),
		Link: &link,
	})
	if err != nil {
		slog.Error("failed to send leave notification", "leave_id", request.ID, "error", err)
	}
}

func lowerStatus(s leave.Status) string {
	if s == leave.StatusApproved {
		return "approved"
	}
	return "rejected"
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}
	return responses
}
