package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_type = ? ORDER BY name COLLATE NOCASE, user_id`,
		string(user.RoleEmployee),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := []user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, u)
	}
	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, id int64, f employee.ProfileFields) error {
	q := GetQuerier(ctx, r.db)

	updates := []string{}
	args := []any{}

	if f.Name != nil {
		updates = append(updates, "name = ?")
		args = append(args, *f.Name)
	}
	if f.Phone != nil {
		updates = append(updates, "phone = ?")
		args = append(args, *f.Phone)
	}
	if f.Department != nil {
		updates = append(updates, "department = ?")
		args = append(args, *f.Department)
	}
	if f.Designation != nil {
		updates = append(updates, "designation = ?")
		args = append(args, *f.Designation)
	}
	if f.JoiningDate != nil {
		updates = append(updates, "joining_date = ?")
		args = append(args, f.JoiningDate.Format(dateLayout))
	}
	if f.Address != nil {
		updates = append(updates, "address = ?")
		args = append(args, *f.Address)
	}
	if f.Salary != nil {
		updates = append(updates, "salary = ?")
		args = append(args, *f.Salary)
	}

	if len(updates) == 0 {
		return employee.ErrNoFieldsToUpdate
	}

	updates = append(updates, "updated_at = ?")
	args = append(args, formatTimestamp(time.Now()), id)

	query := `UPDATE users SET ` + strings.Join(updates, ", ") + ` WHERE user_id = ?`
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete implements employee.EmployeeRepository. Dependent rows go with the user
// through ON DELETE CASCADE.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	res, err := q.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// NextSerial implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) NextSerial(ctx context.Context, year int) (int, error) {
	q := GetQuerier(ctx, r.db)

	seed := `
		INSERT INTO login_id_counters (year, last_serial)
		SELECT ?, COUNT(*) FROM users
		WHERE user_type = ? AND substr(joining_date, 1, 4) = ?
		ON CONFLICT (year) DO NOTHING
	`
	if _, err := q.ExecContext(ctx, seed, year, string(user.RoleEmployee), strconv.Itoa(year)); err != nil {
		return 0, fmt.Errorf("failed to seed login id counter: %w", err)
	}

	var serial int
	err := q.QueryRowContext(ctx,
		`UPDATE login_id_counters SET last_serial = last_serial + 1 WHERE year = ? RETURNING last_serial`,
		year,
	).Scan(&serial)
	if err != nil {
		return 0, fmt.Errorf("failed to bump login id counter: %w", err)
	}
	return serial, nil
}
