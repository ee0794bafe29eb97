package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxListRows caps every payroll listing, one year of monthly records.
const MaxListRows = 12

// PayrollRecord is the net pay of one employee for one month.
type PayrollRecord struct {
	ID              int64
	UserID          int64
	Month           int
	Year            int
	SalaryStructure *string
	Deductions      decimal.Decimal
	NetPay          decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
}

// Period formats the record's month as YYYY-MM.
func (r *PayrollRecord) Period() string {
	return time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
