package employee

import (
	"context"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
)

// EmployeeRepository covers directory operations on user rows.
type EmployeeRepository interface {
	List(ctx context.Context) ([]user.User, error)
	Update(ctx context.Context, id int64, fields ProfileFields) error
	Delete(ctx context.Context, id int64) error
	// NextSerial atomically bumps and returns the login ID counter for year. The counter
	// is seeded with the number of employees who joined that year.
	NextSerial(ctx context.Context, year int) (int, error)
}

// ProfileFields holds the columns an update may set. Nil means untouched.
type ProfileFields struct {
	Name        *string
	Phone       *string
	Department  *string
	Designation *string
	JoiningDate *time.Time
	Address     *string
	Salary      *string
}

// IsEmpty reports whether no column would change.
func (f ProfileFields) IsEmpty() bool {
	return f.Name == nil && f.Phone == nil && f.Department == nil && f.Designation == nil &&
		f.JoiningDate == nil && f.Address == nil && f.Salary == nil
}
