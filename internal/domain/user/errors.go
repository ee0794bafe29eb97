package user

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserEmailExists = errors.New("email already registered")
	ErrLoginIDExists   = errors.New("employee ID already exists")

	ErrAdminOrHRAccessRequired = errors.New("admin/HR access only")
	ErrAdminAccessRequired     = errors.New("admin access only")
	ErrEmployeeAccessRequired  = errors.New("only employees can perform this action")
	ErrAccessDenied            = errors.New("access denied")
)
