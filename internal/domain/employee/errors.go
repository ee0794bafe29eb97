package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrNoFieldsToUpdate   = errors.New("no valid fields to update")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")
	ErrLoginIDAllocation  = errors.New("failed to allocate a unique employee ID")
	ErrInvalidJoiningDate = errors.New("joining date must be YYYY-MM-DD")
)
