package payroll

import "context"

// PayrollRepository defines data access methods for payroll.
type PayrollRepository interface {
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id int64) (PayrollRecord, error)
	// List returns records newest period first, capped at MaxListRows
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, error)
	Update(ctx context.Context, id int64, req UpdatePayrollRecordRequest) error
	// GetForPeriod returns ErrPayrollRecordNotFound when no record exists
	GetForPeriod(ctx context.Context, userID int64, month, year int) (PayrollRecord, error)
}
