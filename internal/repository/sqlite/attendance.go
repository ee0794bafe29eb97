package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row rowScanner, joined bool) (attendance.Attendance, error) {
	var (
		a                          attendance.Attendance
		date, status               string
		checkIn, checkOut          sql.NullString
		createdAt, updatedAt       string
		employeeName, employeeMail sql.NullString
	)
	dest := []any{&a.ID, &a.UserID, &date, &checkIn, &checkOut, &status, &createdAt, &updatedAt}
	if joined {
		dest = append(dest, &employeeName, &employeeMail)
	}
	if err := row.Scan(dest...); err != nil {
		return attendance.Attendance{}, err
	}

	a.Date = parseDate(date)
	a.CheckIn = timestampPtr(checkIn)
	a.CheckOut = timestampPtr(checkOut)
	a.Status = attendance.Status(status)
	a.CreatedAt = parseTimestamp(createdAt)
	a.UpdatedAt = parseTimestamp(updatedAt)
	a.EmployeeName = stringPtr(employeeName)
	a.EmployeeEmail = stringPtr(employeeMail)
	return a, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID int64, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT attendance_id, user_id, date, check_in, check_out, status, created_at, updated_at
		FROM attendance
		WHERE user_id = ? AND date = ?
	`
	a, err := scanAttendance(q.QueryRowContext(ctx, query, userID, date.Format(dateLayout)), false)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return &a, nil
}

// CheckIn implements attendance.AttendanceRepository. The conditional upsert makes two
// concurrent check-ins resolve to a single row with exactly one winner.
func (r *attendanceRepositoryImpl) CheckIn(ctx context.Context, userID int64, date time.Time, at time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	now := formatTimestamp(at)
	query := `
		INSERT INTO attendance (user_id, date, check_in, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO UPDATE
		SET check_in = excluded.check_in, status = excluded.status, updated_at = excluded.updated_at
		WHERE attendance.check_in IS NULL
	`
	res, err := q.ExecContext(ctx, query,
		userID, date.Format(dateLayout), now, string(attendance.StatusPresent), now, now,
	)
	if err != nil {
		return false, fmt.Errorf("failed to check in: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CheckOut(ctx context.Context, id int64, at time.Time, status attendance.Status) (bool, error) {
	q := GetQuerier(ctx, r.db)

	now := formatTimestamp(at)
	res, err := q.ExecContext(ctx, `
		UPDATE attendance
		SET check_out = ?, status = ?, updated_at = ?
		WHERE attendance_id = ? AND check_in IS NOT NULL AND check_out IS NULL
	`, now, string(status), now, id)
	if err != nil {
		return false, fmt.Errorf("failed to check out: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkLeave implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) MarkLeave(ctx context.Context, userID int64, dates []time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (user_id, date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO UPDATE
		SET status = excluded.status, updated_at = excluded.updated_at
	`
	now := formatTimestamp(time.Now())
	for _, d := range dates {
		if _, err := q.ExecContext(ctx, query, userID, d.Format(dateLayout), string(attendance.StatusLeave), now, now); err != nil {
			return fmt.Errorf("failed to mark leave on %s: %w", d.Format(dateLayout), err)
		}
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"1 = 1"}
	args := []any{}

	if filter.UserID != 0 {
		where = append(where, "a.user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.StartDate != nil {
		where = append(where, "a.date >= ?")
		args = append(args, filter.StartDate.Format(dateLayout))
	}
	if filter.EndDate != nil {
		where = append(where, "a.date <= ?")
		args = append(args, filter.EndDate.Format(dateLayout))
	}

	limit := filter.Limit
	if limit <= 0 || limit > attendance.MaxListRows {
		limit = attendance.MaxListRows
	}
	args = append(args, limit)

	query := `
		SELECT a.attendance_id, a.user_id, a.date, a.check_in, a.check_out, a.status,
			   a.created_at, a.updated_at, u.name, u.email
		FROM attendance a
		JOIN users u ON u.user_id = a.user_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY a.date DESC, a.attendance_id DESC
		LIMIT ?
	`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// StatusesOn implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) StatusesOn(ctx context.Context, date time.Time) (map[int64]attendance.Status, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.QueryContext(ctx, `SELECT user_id, status FROM attendance WHERE date = ?`, date.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance statuses: %w", err)
	}
	defer rows.Close()

	statuses := make(map[int64]attendance.Status)
	for rows.Next() {
		var (
			userID int64
			status string
		)
		if err := rows.Scan(&userID, &status); err != nil {
			return nil, err
		}
		statuses[userID] = attendance.Status(status)
	}
	return statuses, rows.Err()
}
