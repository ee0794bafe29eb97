package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
)

const payrollColumns = `p.payroll_id, p.user_id, p.month, p.year, p.salary_structure, p.deductions,
	p.net_pay, p.created_at, p.updated_at, u.name`

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

func scanPayroll(row rowScanner) (payroll.PayrollRecord, error) {
	var (
		rec                  payroll.PayrollRecord
		structure, name      sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Month,
		&rec.Year,
		&structure,
		&rec.Deductions,
		&rec.NetPay,
		&createdAt,
		&updatedAt,
		&name,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	rec.SalaryStructure = stringPtr(structure)
	rec.EmployeeName = stringPtr(name)
	rec.CreatedAt = parseTimestamp(createdAt)
	rec.UpdatedAt = parseTimestamp(updatedAt)
	return rec, nil
}

// Create implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	now := formatTimestamp(time.Now())
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO payroll (user_id, month, year, salary_structure, deductions, net_pay, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING payroll_id
	`,
		record.UserID,
		record.Month,
		record.Year,
		nullString(record.SalaryStructure),
		record.Deductions.String(),
		record.NetPay.String(),
		now,
		now,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return payroll.PayrollRecord{}, payroll.ErrEmployeeNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id int64) (payroll.PayrollRecord, error) {
	return r.getOne(ctx, "p.payroll_id = ?", id)
}

// GetForPeriod implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetForPeriod(ctx context.Context, userID int64, month, year int) (payroll.PayrollRecord, error) {
	return r.getOne(ctx, "p.user_id = ? AND p.month = ? AND p.year = ?", userID, month, year)
}

func (r *payrollRepositoryImpl) getOne(ctx context.Context, where string, args ...any) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + `
		FROM payroll p
		JOIN users u ON u.user_id = p.user_id
		WHERE ` + where
	rec, err := scanPayroll(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"1 = 1"}
	args := []any{}

	if filter.UserID != 0 {
		where = append(where, "p.user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.Month != 0 {
		where = append(where, "p.month = ?")
		args = append(args, filter.Month)
	}
	if filter.Year != 0 {
		where = append(where, "p.year = ?")
		args = append(args, filter.Year)
	}
	args = append(args, payroll.MaxListRows)

	query := `SELECT ` + payrollColumns + `
		FROM payroll p
		JOIN users u ON u.user_id = p.user_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY p.year DESC, p.month DESC, p.payroll_id DESC
		LIMIT ?`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	records := []payroll.PayrollRecord{}
	for rows.Next() {
		rec, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Update implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Update(ctx context.Context, id int64, req payroll.UpdatePayrollRecordRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := []string{}
	args := []any{}

	if req.SalaryStructure != nil {
		updates = append(updates, "salary_structure = ?")
		args = append(args, *req.SalaryStructure)
	}
	if req.Deductions != nil {
		updates = append(updates, "deductions = ?")
		args = append(args, req.Deductions.String())
	}
	if req.NetPay != nil {
		updates = append(updates, "net_pay = ?")
		args = append(args, req.NetPay.String())
	}

	if len(updates) == 0 {
		return payroll.ErrNoFieldsToUpdate
	}

	updates = append(updates, "updated_at = ?")
	args = append(args, formatTimestamp(time.Now()), id)

	res, err := q.ExecContext(ctx, `UPDATE payroll SET `+strings.Join(updates, ", ")+` WHERE payroll_id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update payroll record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}
