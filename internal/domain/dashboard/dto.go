package dashboard

import (
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// EmployeeDashboardResponse is the employee landing page payload.
type EmployeeDashboardResponse struct {
	Date              string                `json:"date"`
	AttendanceToday   *AttendanceTodayData  `json:"attendanceToday"`
	AttendanceSummary AttendanceSummaryData `json:"attendanceSummary"`
	LeaveSummary      LeaveSummaryData      `json:"leaveSummary"`
	CurrentNetPay     *decimal.Decimal      `json:"currentNetPay"`
}

// AttendanceTodayData is nil in the response until the employee has a row for today.
type AttendanceTodayData struct {
	Status   attendance.Status `json:"status"`
	CheckIn  *string           `json:"checkIn"`
	CheckOut *string           `json:"checkOut"`
}

// AdminDashboardResponse is the admin landing page payload.
type AdminDashboardResponse struct {
	Date           string `json:"date"`
	TotalEmployees int    `json:"totalEmployees"`
	PresentToday   int    `json:"presentToday"`
	OnLeaveToday   int    `json:"onLeaveToday"`
	AbsentToday    int    `json:"absentToday"`
	PendingLeaves  int    `json:"pendingLeaves"`

	Employees []EmployeeStatusResponse `json:"employees"`
}

// EmployeeStatusResponse is one row of today's status board.
type EmployeeStatusResponse struct {
	UserID     int64             `json:"userId"`
	Name       string            `json:"name"`
	EmployeeID *string           `json:"employeeId,omitempty"`
	Department *string           `json:"department,omitempty"`
	Status     attendance.Status `json:"status"`
}
