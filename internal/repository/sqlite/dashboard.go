package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/dashboard"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// LeaveSummary implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) LeaveSummary(ctx context.Context, userID int64, year int) (dashboard.LeaveSummaryData, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ?
				THEN CAST(julianday(end_date) - julianday(start_date) AS INTEGER) + 1
				ELSE 0 END), 0)
		FROM leave_requests
		WHERE user_id = ? AND substr(start_date, 1, 4) = ?
	`
	var data dashboard.LeaveSummaryData
	err := q.QueryRowContext(ctx, query,
		string(leave.StatusPending),
		string(leave.StatusApproved),
		string(leave.StatusRejected),
		string(leave.StatusApproved),
		userID,
		strconv.Itoa(year),
	).Scan(&data.Total, &data.Pending, &data.Approved, &data.Rejected, &data.ApprovedDays)
	if err != nil {
		return dashboard.LeaveSummaryData{}, fmt.Errorf("failed to summarise leave: %w", err)
	}
	return data, nil
}

// AttendanceSummary implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) AttendanceSummary(ctx context.Context, userID int64, year, month int) (dashboard.AttendanceSummaryData, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM attendance
		WHERE user_id = ? AND substr(date, 1, 7) = ?
		GROUP BY status
	`, userID, fmt.Sprintf("%04d-%02d", year, month))
	if err != nil {
		return dashboard.AttendanceSummaryData{}, fmt.Errorf("failed to summarise attendance: %w", err)
	}
	defer rows.Close()

	var data dashboard.AttendanceSummaryData
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return dashboard.AttendanceSummaryData{}, err
		}
		switch attendance.Status(status) {
		case attendance.StatusPresent:
			data.Present = count
		case attendance.StatusHalfDay:
			data.HalfDay = count
		case attendance.StatusLeave:
			data.Leave = count
		case attendance.StatusAbsent:
			data.Absent = count
		}
	}
	return data, rows.Err()
}

// CountPendingLeave implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountPendingLeave(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count sql.NullInt64
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM leave_requests WHERE status = ?`, string(leave.StatusPending)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending leave: %w", err)
	}
	return int(count.Int64), nil
}
