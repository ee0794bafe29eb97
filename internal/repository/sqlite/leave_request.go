package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
)

const leaveColumns = `lr.leave_id, lr.user_id, lr.leave_type, lr.start_date, lr.end_date, lr.reason,
	lr.status, lr.admin_comment, lr.created_at, lr.updated_at, u.name, u.email, u.employee_id`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row rowScanner) (leave.LeaveRequest, error) {
	var (
		lr                          leave.LeaveRequest
		leaveType, status           string
		startDate, endDate          string
		createdAt, updatedAt        string
		reason, adminComment        sql.NullString
		userName, userMail, loginID sql.NullString
	)
	err := row.Scan(
		&lr.ID,
		&lr.UserID,
		&leaveType,
		&startDate,
		&endDate,
		&reason,
		&status,
		&adminComment,
		&createdAt,
		&updatedAt,
		&userName,
		&userMail,
		&loginID,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	lr.LeaveType = leave.Type(leaveType)
	lr.Status = leave.Status(status)
	lr.StartDate = parseDate(startDate)
	lr.EndDate = parseDate(endDate)
	lr.Reason = stringPtr(reason)
	lr.AdminComment = stringPtr(adminComment)
	lr.CreatedAt = parseTimestamp(createdAt)
	lr.UpdatedAt = parseTimestamp(updatedAt)
	lr.UserName = stringPtr(userName)
	lr.UserEmail = stringPtr(userMail)
	lr.UserLoginID = stringPtr(loginID)
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) query(ctx context.Context, query string, args ...any) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	now := formatTimestamp(time.Now())
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO leave_requests (user_id, leave_type, start_date, end_date, reason, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING leave_id
	`,
		request.UserID,
		string(request.LeaveType),
		request.StartDate.Format(dateLayout),
		request.EndDate.Format(dateLayout),
		nullString(request.Reason),
		string(leave.StatusPending),
		now,
		now,
	).Scan(&id)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + `
		FROM leave_requests lr
		JOIN users u ON u.user_id = lr.user_id
		WHERE lr.leave_id = ?`
	lr, err := scanLeaveRequest(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, error) {
	where := []string{"1 = 1"}
	args := []any{}

	if filter.UserID != 0 {
		where = append(where, "lr.user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.Status != nil {
		where = append(where, "lr.status = ?")
		args = append(args, string(*filter.Status))
	}

	query := `SELECT ` + leaveColumns + `
		FROM leave_requests lr
		JOIN users u ON u.user_id = lr.user_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY lr.created_at DESC, lr.leave_id DESC`
	return r.query(ctx, query, args...)
}

// ListPending implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + `
		FROM leave_requests lr
		JOIN users u ON u.user_id = lr.user_id
		WHERE lr.status = ?
		ORDER BY lr.created_at ASC, lr.leave_id ASC`
	return r.query(ctx, query, string(leave.StatusPending))
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status leave.Status, adminComment *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	res, err := q.ExecContext(ctx, `
		UPDATE leave_requests
		SET status = ?, admin_comment = ?, updated_at = ?
		WHERE leave_id = ? AND status = ?
	`, string(status), nullString(adminComment), formatTimestamp(time.Now()), id, string(leave.StatusPending))
	if err != nil {
		return false, fmt.Errorf("failed to update leave request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// HasApprovedOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasApprovedOverlap(ctx context.Context, userID int64, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE user_id = ? AND status = ? AND start_date <= ? AND end_date >= ?
		)
	`, userID, string(leave.StatusApproved), end.Format(dateLayout), start.Format(dateLayout)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping leave: %w", err)
	}
	return exists, nil
}

// ApprovedUsersOn implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ApprovedUsersOn(ctx context.Context, date time.Time) (map[int64]bool, error) {
	q := GetQuerier(ctx, r.db)

	day := date.Format(dateLayout)
	rows, err := q.QueryContext(ctx, `
		SELECT DISTINCT user_id FROM leave_requests
		WHERE status = ? AND start_date <= ? AND end_date >= ?
	`, string(leave.StatusApproved), day, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get users on leave: %w", err)
	}
	defer rows.Close()

	users := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		users[id] = true
	}
	return users, rows.Err()
}
