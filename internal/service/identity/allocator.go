// Package identity issues login IDs and system passwords for new accounts.
package identity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/credential"
	"golang.org/x/crypto/bcrypt"
)

// maxAttempts bounds how many serials are skipped when derived IDs already exist.
const maxAttempts = 10

// Credentials is a freshly issued identity. Password is the only plaintext copy.
type Credentials struct {
	LoginID      string
	Password     string
	PasswordHash string
}

type Allocator struct {
	employees  employee.EmployeeRepository
	users      user.UserRepository
	bcryptCost int
}

func NewAllocator(employeeRepository employee.EmployeeRepository, userRepository user.UserRepository) *Allocator {
	return &Allocator{
		employees:  employeeRepository,
		users:      userRepository,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// WithBcryptCost overrides the hashing cost, tests use bcrypt.MinCost.
func (a *Allocator) WithBcryptCost(cost int) *Allocator {
	a.bcryptCost = cost
	return a
}

// AllocateLoginID derives the next free login ID for someone joining in joiningDate's
// year. Call it with a transaction context so the counter bump and the insert commit
// together.
func (a *Allocator) AllocateLoginID(ctx context.Context, company, fullName string, joiningDate time.Time) (string, error) {
	year := joiningDate.Year()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		serial, err := a.employees.NextSerial(ctx, year)
		if err != nil {
			return "", fmt.Errorf("failed to bump login id counter: %w", err)
		}
		if serial > credential.MaxSerial {
			slog.Error("login id serials exhausted", "year", year, "serial", serial)
			return "", employee.ErrLoginIDAllocation
		}

		loginID := credential.LoginID(company, fullName, year, serial)
		taken, err := a.users.ExistsByLoginID(ctx, loginID)
		if err != nil {
			return "", fmt.Errorf("failed to check login id: %w", err)
		}
		if !taken {
			return loginID, nil
		}
		slog.Warn("derived login id already taken, skipping serial", "login_id", loginID)
	}

	return "", employee.ErrLoginIDAllocation
}

// NewPassword generates a system password and its bcrypt hash.
func (a *Allocator) NewPassword() (plain, hash string, err error) {
	plain, err = credential.SystemPassword(credential.DefaultPasswordLength)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate password: %w", err)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), a.bcryptCost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash password: %w", err)
	}
	return plain, string(h), nil
}

// Issue allocates a login ID and a system password in one call.
func (a *Allocator) Issue(ctx context.Context, company, fullName string, joiningDate time.Time) (Credentials, error) {
	loginID, err := a.AllocateLoginID(ctx, company, fullName, joiningDate)
	if err != nil {
		return Credentials{}, err
	}
	plain, hash, err := a.NewPassword()
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{LoginID: loginID, Password: plain, PasswordHash: hash}, nil
}

// HashPassword hashes a user-chosen password with the allocator's cost.
func (a *Allocator) HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(h), nil
}
