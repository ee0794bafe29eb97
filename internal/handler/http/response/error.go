package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/notification"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/oauth"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.Summary(), validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrNotAuthenticated),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrSessionRevoked):
		Unauthorized(w, "Not authenticated")
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrAccountNotLinked):
		Unauthorized(w, "No account is registered for this Google email")
	case errors.Is(err, oauth.ErrEmailNotVerified):
		Unauthorized(w, "Google email is not verified")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		BadRequest(w, "Invalid OAuth state", nil)
	case errors.Is(err, auth.ErrOAuthDisabled):
		NotFound(w, "Google sign-in is not configured")

	// Role and ownership errors
	case errors.Is(err, user.ErrAdminOrHRAccessRequired):
		Forbidden(w, "Admin/HR access only")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access only")
	case errors.Is(err, user.ErrEmployeeAccessRequired):
		Forbidden(w, "Only employees can perform this action")
	case errors.Is(err, user.ErrAccessDenied):
		Forbidden(w, "Access denied")

	// User and employee domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists), errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrLoginIDExists):
		Conflict(w, "Employee ID already exists")
	case errors.Is(err, employee.ErrLoginIDAllocation):
		Conflict(w, "No employee ID is available for this joining year")
	case errors.Is(err, employee.ErrEmployeeNotFound), errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNoFieldsToUpdate):
		BadRequest(w, "No valid fields to update", nil)
	case errors.Is(err, employee.ErrCannotDeleteSelf):
		BadRequest(w, "You cannot delete your own account", nil)
	case errors.Is(err, employee.ErrInvalidJoiningDate):
		BadRequest(w, "Joining date must be in YYYY-MM-DD format", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Please check in first", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrInvalidAction):
		BadRequest(w, `Invalid action. Use "checkin" or "checkout"`, nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request has already been processed")
	case errors.Is(err, leave.ErrOverlappingLeave):
		BadRequest(w, "You already have approved leave during this period", nil)
	case errors.Is(err, leave.ErrInsufficientNotice):
		BadRequest(w, "Leave request does not meet the notice period", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this month/year")
	case errors.Is(err, payroll.ErrNoFieldsToUpdate):
		BadRequest(w, "No fields to update", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrInvalidNotificationType):
		BadRequest(w, "Invalid notification type", nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
