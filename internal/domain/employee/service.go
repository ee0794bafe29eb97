package employee

import (
	"context"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// ListEmployees lists every EMPLOYEE account ordered by name (Admin/HR)
	ListEmployees(ctx context.Context) ([]user.UserResponse, error)

	// GetEmployee retrieves a profile (self or Admin/HR)
	GetEmployee(ctx context.Context, id int64) (user.UserResponse, error)

	// CreateEmployee provisions an account with a generated login ID and password (Admin/HR)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (CreateEmployeeResponse, error)

	// UpdateEmployee edits a profile; employees may only change their name and phone
	UpdateEmployee(ctx context.Context, id int64, req UpdateEmployeeRequest) (user.UserResponse, error)

	// DeleteEmployee removes the account and everything it owns (Admin)
	DeleteEmployee(ctx context.Context, id int64) error
}
