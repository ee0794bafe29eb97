package dashboard

import (
	"context"
)

// DashboardRepository runs the aggregate queries behind both dashboards.
type DashboardRepository interface {
	// LeaveSummary counts a user's requests starting in year and the approved days
	LeaveSummary(ctx context.Context, userID int64, year int) (LeaveSummaryData, error)

	// AttendanceSummary counts a user's attendance statuses in one month
	AttendanceSummary(ctx context.Context, userID int64, year, month int) (AttendanceSummaryData, error)

	// CountPendingLeave counts requests awaiting a decision across the company
	CountPendingLeave(ctx context.Context) (int, error)
}

// LeaveSummaryData contains raw leave counts from DB
type LeaveSummaryData struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Approved     int `json:"approved"`
	Rejected     int `json:"rejected"`
	ApprovedDays int `json:"approvedDays"`
}

// AttendanceSummaryData contains raw attendance counts from DB
type AttendanceSummaryData struct {
	Present int `json:"present"`
	HalfDay int `json:"halfDay"`
	Leave   int `json:"leave"`
	Absent  int `json:"absent"`
}
