package payroll

import (
	"strconv"
	"strings"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePayrollRecordRequest struct {
	UserID          int64   `json:"userId"`
	Month           int     `json:"month"`
	Year            int     `json:"year"`
	SalaryStructure *string `json:"salaryStructure,omitempty"`
	Deductions      *string `json:"deductions,omitempty"`
	NetPay          string  `json:"netPay"`

	deductions decimal.Decimal
	netPay     decimal.Decimal
}

// Amounts returns the parsed deductions and net pay after a successful Validate.
func (r *CreatePayrollRecordRequest) Amounts() (deductions, netPay decimal.Decimal) {
	return r.deductions, r.netPay
}

func (r *CreatePayrollRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "userId",
			Message: "userId is required",
		})
	}

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if validator.IsEmpty(r.NetPay) {
		errs = append(errs, validator.ValidationError{
			Field:   "netPay",
			Message: "netPay is required",
		})
	} else if d, ok := validator.IsNonNegativeAmount(r.NetPay); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "netPay",
			Message: "netPay must be a non-negative number",
		})
	} else {
		r.netPay = d
	}

	r.deductions = decimal.Zero
	if r.Deductions != nil && !validator.IsEmpty(*r.Deductions) {
		if d, ok := validator.IsNonNegativeAmount(*r.Deductions); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "deductions",
				Message: "deductions must be a non-negative number",
			})
		} else {
			r.deductions = d
		}
	}

	if r.SalaryStructure != nil {
		s := strings.TrimSpace(*r.SalaryStructure)
		r.SalaryStructure = &s
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdatePayrollRecordRequest is a partial update; absent fields are left alone.
type UpdatePayrollRecordRequest struct {
	SalaryStructure *string          `json:"salaryStructure,omitempty"`
	Deductions      *decimal.Decimal `json:"deductions,omitempty"`
	NetPay          *decimal.Decimal `json:"netPay,omitempty"`
}

func (r *UpdatePayrollRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.SalaryStructure == nil && r.Deductions == nil && r.NetPay == nil {
		return ErrNoFieldsToUpdate
	}

	if r.Deductions != nil && r.Deductions.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "deductions",
			Message: "deductions must be a non-negative number",
		})
	}

	if r.NetPay != nil && r.NetPay.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "netPay",
			Message: "netPay must be a non-negative number",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PayrollFilter narrows listings. Zero values mean "any".
type PayrollFilter struct {
	UserID int64
	Month  int
	Year   int
}

// ParseFilter reads userId, month and year from query parameters.
func ParseFilter(userID, month, year string) (PayrollFilter, error) {
	var (
		f    PayrollFilter
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

	if month != "" {
		m, err := strconv.Atoi(month)
		if err != nil || !validator.IsValidMonth(m) {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be between 1 and 12",
			})
		}
		f.Month = m
	}

	if year != "" {
		y, err := strconv.Atoi(year)
		if err != nil || y <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "year",
				Message: "year must be a positive integer",
			})
		}
		f.Year = y
	}

	if len(errs) > 0 {
		return PayrollFilter{}, errs
	}
	return f, nil
}

type PayrollRecordResponse struct {
	ID              int64           `json:"payrollId"`
	UserID          int64           `json:"userId"`
	EmployeeName    *string         `json:"employeeName,omitempty"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	Period          string          `json:"period"`
	SalaryStructure *string         `json:"salaryStructure,omitempty"`
	Deductions      decimal.Decimal `json:"deductions"`
	NetPay          decimal.Decimal `json:"netPay"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

func NewPayrollRecordResponse(r PayrollRecord) PayrollRecordResponse {
	return PayrollRecordResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		EmployeeName:    r.EmployeeName,
		Month:           r.Month,
		Year:            r.Year,
		Period:          r.Period(),
		SalaryStructure: r.SalaryStructure,
		Deductions:      r.Deductions,
		NetPay:          r.NetPay,
		CreatedAt:       r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       r.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
