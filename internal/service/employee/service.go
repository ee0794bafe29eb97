package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/sqlite"
	"github.com/dayflow-hr/hrms-backend-go/internal/service/identity"
)

type EmployeeServiceImpl struct {
	db           *database.DB
	userRepo     user.UserRepository
	employeeRepo employee.EmployeeRepository
	allocator    *identity.Allocator
}

func NewEmployeeService(
	db *database.DB,
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	allocator *identity.Allocator,
) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		db:           db,
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		allocator:    allocator,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]user.UserResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !user.CanViewAllRecords(principal.Role) {
		return nil, user.ErrAdminOrHRAccessRequired
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, user.NewUserResponse(e))
	}
	return responses, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id int64) (user.UserResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if !principal.CanAccess(id) {
		return user.UserResponse{}, user.ErrAccessDenied
	}

	u, err := s.getUser(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// CreateEmployee implements employee.EmployeeService. The login ID counter bump and the
// insert share one transaction.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.CreateEmployeeResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return employee.CreateEmployeeResponse{}, err
	}
	if !user.CanManageEmployees(principal.Role) {
		return employee.CreateEmployeeResponse{}, user.ErrAdminOrHRAccessRequired
	}

	if err := req.Validate(); err != nil {
		return employee.CreateEmployeeResponse{}, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return employee.CreateEmployeeResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return employee.CreateEmployeeResponse{}, employee.ErrEmailExists
	}

	joiningDate := req.ParsedJoiningDate()

	var (
		created  user.User
		password string
	)
	err = sqlite.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		creds, err := s.allocator.Issue(txCtx, req.CompanyName, req.Name, joiningDate)
		if err != nil {
			return err
		}
		password = creds.Password

		loginID := creds.LoginID
		created, err = s.userRepo.Create(txCtx, user.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: creds.PasswordHash,
			Phone:        req.Phone,
			Role:         user.RoleEmployee,
			LoginID:      &loginID,
			Department:   req.Department,
			Designation:  req.Position,
			JoiningDate:  &joiningDate,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) {
			return employee.CreateEmployeeResponse{}, employee.ErrEmailExists
		}
		return employee.CreateEmployeeResponse{}, err
	}

	slog.Info("employee created", "user_id", created.ID, "created_by", principal.UserID)

	return employee.CreateEmployeeResponse{
		ID:             created.ID,
		Name:           created.Name,
		Email:          created.Email,
		EmployeeID:     *created.LoginID,
		SystemPassword: password,
		Department:     created.Department,
		Position:       created.Designation,
		JoiningDate:    joiningDate.Format("2006-01-02"),
	}, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (user.UserResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if !principal.CanAccess(id) {
		return user.UserResponse{}, user.ErrAccessDenied
	}

	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	fields := req.Fields(!user.CanManageEmployees(principal.Role))
	if fields.IsEmpty() {
		return user.UserResponse{}, employee.ErrNoFieldsToUpdate
	}

	if err := s.employeeRepo.Update(ctx, id, fields); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.getUser(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id int64) error {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return err
	}
	if !user.CanDeleteEmployees(principal.Role) {
		return user.ErrAdminAccessRequired
	}
	if id == principal.UserID {
		return employee.ErrCannotDeleteSelf
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("employee deleted", "user_id", id, "deleted_by", principal.UserID)
	return nil
}

func (s *EmployeeServiceImpl) getUser(ctx context.Context, id int64) (user.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, employee.ErrEmployeeNotFound
		}
		return user.User{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return u, nil
}
