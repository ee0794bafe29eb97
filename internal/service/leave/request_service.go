package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/sqlite"
)

// RequestService applies the leave policy and moves requests through their lifecycle.
// It performs no authorization; LeaveServiceImpl does that.
type RequestService struct {
	db *database.DB
	leave.LeaveRequestRepository
	attendance.AttendanceRepository
	policy leave.Policy
}

func NewRequestService(db *database.DB, leaveRequestRepository leave.LeaveRequestRepository, attendanceRepository attendance.AttendanceRepository, policy leave.Policy) *RequestService {
	return &RequestService{
		db:                     db,
		LeaveRequestRepository: leaveRequestRepository,
		AttendanceRepository:   attendanceRepository,
		policy:                 policy,
	}
}

// Submit stores a pending request for userID after checking the window against policy.
// today is the current date in the company's zone.
func (r *RequestService) Submit(ctx context.Context, userID int64, req leave.CreateLeaveRequestRequest, today time.Time) (leave.LeaveRequest, error) {
	start, end := req.Window()
	request := leave.LeaveRequest{
		UserID:    userID,
		LeaveType: leave.Type(req.LeaveType),
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
		Status:    leave.StatusPending,
	}

	if maxDays := r.policy.MaxWindow(); request.Days() > maxDays {
		return leave.LeaveRequest{}, validator.New("endDate", fmt.Sprintf("Leave request cannot exceed %d days", maxDays))
	}

	if r.policy.EnforceNotice {
		earliest := today.AddDate(0, 0, r.policy.NoticeDays(request.LeaveType))
		if start.Before(earliest) {
			return leave.LeaveRequest{}, leave.ErrInsufficientNotice
		}
	}

	if r.policy.EnforceOverlap {
		overlap, err := r.LeaveRequestRepository.HasApprovedOverlap(ctx, userID, start, end)
		if err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("failed to check overlapping leave: %w", err)
		}
		if overlap {
			return leave.LeaveRequest{}, leave.ErrOverlappingLeave
		}
	}

	created, err := r.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// Decide sets the final status of a pending request. On approval every covered date is
// marked Leave in attendance. Both writes commit together or not at all.
func (r *RequestService) Decide(ctx context.Context, id int64, status leave.Status, adminComment *string) (leave.LeaveRequest, error) {
	var decided leave.LeaveRequest

	err := sqlite.WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		request, err := r.LeaveRequestRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !request.IsPending() {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		updated, err := r.LeaveRequestRepository.UpdateStatus(txCtx, id, status, adminComment)
		if err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		if !updated {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		if status == leave.StatusApproved {
			if err := r.AttendanceRepository.MarkLeave(txCtx, request.UserID, request.Dates()); err != nil {
				return fmt.Errorf("failed to mark attendance as leave: %w", err)
			}
		}

		decided, err = r.LeaveRequestRepository.GetByID(txCtx, id)
		return err
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	slog.Info("leave request decided", "leave_id", id, "status", status, "days", decided.Days())
	return decided, nil
}
