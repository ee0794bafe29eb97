package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

const userColumns = `user_id, name, email, password, phone, user_type, employee_id, department,
	designation, joining_date, salary, address, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (user.User, error) {
	var (
		u                                 user.User
		role, createdAt, updatedAt        string
		phone, loginID, dept, designation sql.NullString
		joiningDate, salary, address      sql.NullString
	)
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&phone,
		&role,
		&loginID,
		&dept,
		&designation,
		&joiningDate,
		&salary,
		&address,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	u.Role = user.Role(role)
	u.Phone = stringPtr(phone)
	u.LoginID = stringPtr(loginID)
	u.Department = stringPtr(dept)
	u.Designation = stringPtr(designation)
	u.JoiningDate = datePtr(joiningDate)
	u.Address = stringPtr(address)
	u.CreatedAt = parseTimestamp(createdAt)
	u.UpdatedAt = parseTimestamp(updatedAt)
	if salary.Valid {
		if d, err := decimal.NewFromString(salary.String); err == nil {
			u.Salary = &d
		}
	}
	return u, nil
}

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, arg any) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	found, err := scanUser(q.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, user.ErrUserNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return found, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id int64) (user.User, error) {
	return r.getOne(ctx, "user_id = ?", id)
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, "email = ? COLLATE NOCASE", email)
}

// GetByLoginID implements user.UserRepository.
func (r *userRepositoryImpl) GetByLoginID(ctx context.Context, loginID string) (user.User, error) {
	return r.getOne(ctx, "employee_id = ?", loginID)
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	var salary sql.NullString
	if newUser.Salary != nil {
		salary = sql.NullString{String: newUser.Salary.String(), Valid: true}
	}

	query := `
		INSERT INTO users (
			name, email, password, phone, user_type, employee_id, department,
			designation, joining_date, salary, address
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRowContext(ctx, query,
		newUser.Name,
		newUser.Email,
		newUser.PasswordHash,
		nullString(newUser.Phone),
		string(newUser.Role),
		nullString(newUser.LoginID),
		nullString(newUser.Department),
		nullString(newUser.Designation),
		nullDate(newUser.JoiningDate),
		salary,
		nullString(newUser.Address),
	))
	if err != nil {
		if isUniqueViolation(err) {
			if newUser.LoginID != nil && strings.Contains(err.Error(), "employee_id") {
				return user.User{}, user.ErrLoginIDExists
			}
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ? COLLATE NOCASE)`, email)
}

// ExistsByLoginID implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByLoginID(ctx context.Context, loginID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE employee_id = ?)`, loginID)
}

func (r *userRepositoryImpl) exists(ctx context.Context, query string, arg any) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	res, err := q.ExecContext(ctx,
		`UPDATE users SET password = ?, updated_at = ? WHERE user_id = ?`,
		passwordHash, formatTimestamp(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
