package leave

import (
	"strconv"
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	LeaveType string  `json:"leaveType"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Reason    *string `json:"reason,omitempty"`

	start time.Time
	end   time.Time
}

// Window returns the parsed dates after a successful Validate.
func (r *CreateLeaveRequestRequest) Window() (time.Time, time.Time) {
	return r.start, r.end
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) || validator.IsEmpty(r.StartDate) || validator.IsEmpty(r.EndDate) {
		return validator.New("leaveType", "Leave type, start date, and end date are required")
	}

	if !validator.IsInSlice(r.LeaveType, Types) {
		errs = append(errs, validator.ValidationError{
			Field:   "leaveType",
			Message: "Invalid leave type",
		})
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate must be YYYY-MM-DD",
		})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must be YYYY-MM-DD",
		})
	}
	if okStart && okEnd && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "Start date must be before end date",
		})
	}

	if r.Reason != nil {
		reason := strings.TrimSpace(*r.Reason)
		r.Reason = &reason
		if reason == "" {
			r.Reason = nil
		}
	}

	if len(errs) > 0 {
		return errs
	}

	r.start, r.end = start, end
	return nil
}

type DecisionRequest struct {
	Status       string  `json:"status"`
	AdminComment *string `json:"adminComment,omitempty"`
}

func (r *DecisionRequest) Validate() error {
	if r.Status != string(StatusApproved) && r.Status != string(StatusRejected) {
		return validator.New("status", "Invalid status")
	}
	if r.AdminComment != nil && strings.TrimSpace(*r.AdminComment) == "" {
		r.AdminComment = nil
	}
	return nil
}

// LeaveFilter narrows listings. UserID zero means everyone.
type LeaveFilter struct {
	UserID int64
	Status *Status
}

// ParseFilter reads userId and status from query parameters.
func ParseFilter(userID, status string) (LeaveFilter, error) {
	var (
		f    LeaveFilter
		errs validator.ValidationErrors
	)

	if userID != "" {
		id, err := strconv.ParseInt(userID, 10, 64)
		if err != nil || id <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "userId",
				Message: "userId must be a positive integer",
			})
		}
		f.UserID = id
	}

	if status != "" {
		st := Status(status)
		switch st {
		case StatusPending, StatusApproved, StatusRejected:
			f.Status = &st
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of Pending, Approved, Rejected",
			})
		}
	}

	if len(errs) > 0 {
		return LeaveFilter{}, errs
	}
	return f, nil
}

type LeaveRequestResponse struct {
	ID           int64   `json:"leaveId"`
	UserID       int64   `json:"userId"`
	LeaveType    Type    `json:"leaveType"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Days         int     `json:"days"`
	Reason       *string `json:"reason,omitempty"`
	Status       Status  `json:"status"`
	AdminComment *string `json:"adminComment,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
	UserName     *string `json:"userName,omitempty"`
	UserEmail    *string `json:"userEmail,omitempty"`
	EmployeeID   *string `json:"employeeId,omitempty"`
}

func NewLeaveRequestResponse(lr LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           lr.ID,
		UserID:       lr.UserID,
		LeaveType:    lr.LeaveType,
		StartDate:    lr.StartDate.Format("2006-01-02"),
		EndDate:      lr.EndDate.Format("2006-01-02"),
		Days:         lr.Days(),
		Reason:       lr.Reason,
		Status:       lr.Status,
		AdminComment: lr.AdminComment,
		CreatedAt:    lr.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    lr.UpdatedAt.Format(time.RFC3339),
		UserName:     lr.UserName,
		UserEmail:    lr.UserEmail,
		EmployeeID:   lr.UserLoginID,
	}
}
