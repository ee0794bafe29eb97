package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleEmployee Role = "EMPLOYEE" // Regular employee, self-service only
	RoleHR       Role = "HR"       // Manages employee records, reads everything
	RoleAdmin    Role = "ADMIN"    // Full access
)

// Roles lists every valid role.
var Roles = []Role{RoleEmployee, RoleHR, RoleAdmin}

// ParseRole converts a stored or submitted value into a Role.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// User is an account together with its employee profile.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	Role         Role
	LoginID      *string
	Department   *string
	Designation  *string
	JoiningDate  *time.Time
	Salary       *decimal.Decimal
	Address      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsEmployee checks if user is a regular employee
func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// IsPrivileged checks if user is HR or Admin
func (u *User) IsPrivileged() bool {
	return u.Role == RoleHR || u.Role == RoleAdmin
}

// HomePath is the page a user lands on after signing in.
func (u *User) HomePath() string {
	return HomePath(u.Role)
}

// HomePath returns the landing page for a role.
func HomePath(role Role) string {
	if role == RoleAdmin || role == RoleHR {
		return "/admin"
	}
	return "/dashboard"
}
