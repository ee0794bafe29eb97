package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this month/year")
	ErrNoFieldsToUpdate           = errors.New("no fields to update")
	ErrEmployeeNotFound           = errors.New("employee not found")
)
