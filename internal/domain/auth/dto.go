package auth

import (
	"strings"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

type RegisterRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Phone      *string `json:"phone,omitempty"`
	EmployeeID *string `json:"employeeId,omitempty"`
	UserType   string  `json:"userType"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

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

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if r.Phone != nil && !validator.IsEmpty(*r.Phone) && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "invalid phone number",
		})
	}

	if r.EmployeeID != nil {
		id := strings.ToUpper(strings.TrimSpace(*r.EmployeeID))
		r.EmployeeID = &id
		if id == "" {
			r.EmployeeID = nil
		}
	}

	if validator.IsEmpty(r.UserType) {
		errs = append(errs, validator.ValidationError{
			Field:   "userType",
			Message: "userType is required",
		})
	} else if _, ok := user.ParseRole(strings.ToUpper(r.UserType)); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "userType",
			Message: "userType must be one of EMPLOYEE, HR, ADMIN",
		})
	} else {
		r.UserType = strings.ToUpper(r.UserType)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LoginRequest accepts either an email or a login ID as the identifier.
type LoginRequest struct {
	Email    string `json:"email"`
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.LoginID = strings.ToUpper(strings.TrimSpace(r.LoginID))

	if r.Email == "" && r.LoginID == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email or loginId is required",
		})
	} else if r.Email != "" && !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SessionResponse is returned by every successful sign-in.
type SessionResponse struct {
	User        user.UserResponse `json:"user"`
	RedirectURL string            `json:"redirectUrl"`
	Token       string            `json:"-"`
	ExpiresAt   int64             `json:"expiresAt"`
}
