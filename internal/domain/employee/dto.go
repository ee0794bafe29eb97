package employee

import (
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	CompanyName string  `json:"companyName"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	Department  *string `json:"department,omitempty"`
	Position    *string `json:"position,omitempty"`
	JoiningDate string  `json:"joiningDate"`

	joiningDate time.Time
}

// ParsedJoiningDate is available after a successful Validate.
func (r *CreateEmployeeRequest) ParsedJoiningDate() time.Time {
	return r.joiningDate
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if validator.IsEmpty(r.CompanyName) {
		errs = append(errs, validator.ValidationError{
			Field:   "companyName",
			Message: "companyName is required",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if r.Phone != nil && !validator.IsEmpty(*r.Phone) && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "invalid phone number",
		})
	}

	if validator.IsEmpty(r.JoiningDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "joiningDate",
			Message: "joiningDate is required",
		})
	} else if d, ok := validator.IsValidDate(r.JoiningDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "joiningDate",
			Message: ErrInvalidJoiningDate.Error(),
		})
	} else {
		r.joiningDate = d
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CreateEmployeeResponse carries the one-time system password.
type CreateEmployeeResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	EmployeeID     string  `json:"employeeId"`
	SystemPassword string  `json:"systemPassword"`
	Department     *string `json:"department,omitempty"`
	Position       *string `json:"position,omitempty"`
	JoiningDate    string  `json:"joiningDate"`
}

// UpdateEmployeeRequest is a partial update; absent fields are left alone.
type UpdateEmployeeRequest struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Department  *string `json:"department,omitempty"`
	Designation *string `json:"designation,omitempty"`
	JoiningDate *string `json:"joiningDate,omitempty"`
	Address     *string `json:"address,omitempty"`
	Salary      *string `json:"salary,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
		if name == "" {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not be empty",
			})
		}
	}

	if r.Phone != nil && !validator.IsEmpty(*r.Phone) && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "invalid phone number",
		})
	}

	if r.JoiningDate != nil {
		if _, ok := validator.IsValidDate(*r.JoiningDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "joiningDate",
				Message: ErrInvalidJoiningDate.Error(),
			})
		}
	}

	if r.Salary != nil {
		if _, ok := validator.IsNonNegativeAmount(*r.Salary); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "salary",
				Message: "salary must be a non-negative number",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Fields converts the request into repository columns. selfService drops everything
// except name and phone.
func (r *UpdateEmployeeRequest) Fields(selfService bool) ProfileFields {
	f := ProfileFields{
		Name:  r.Name,
		Phone: r.Phone,
	}
	if selfService {
		return f
	}

	f.Department = r.Department
	f.Designation = r.Designation
	f.Address = r.Address
	if r.Salary != nil {
		if d, ok := validator.IsNonNegativeAmount(*r.Salary); ok {
			salary := d.String()
			f.Salary = &salary
		}
	}
	if r.JoiningDate != nil {
		if d, ok := validator.IsValidDate(*r.JoiningDate); ok {
			f.JoiningDate = &d
		}
	}
	return f
}
