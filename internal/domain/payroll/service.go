package payroll

import "context"

type PayrollService interface {
	CreatePayrollRecord(ctx context.Context, req CreatePayrollRecordRequest) (PayrollRecordResponse, error)
	UpdatePayrollRecord(ctx context.Context, id int64, req UpdatePayrollRecordRequest) (PayrollRecordResponse, error)
	GetPayrollRecord(ctx context.Context, id int64) (PayrollRecordResponse, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) ([]PayrollRecordResponse, error)
}
