package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/sqlite"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/sqlite/sqlitetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDashboardService(t *testing.T) (*DashboardServiceImpl, *database.DB) {
	db := sqlitetest.NewDB(t)
	svc := NewDashboardService(
		sqlite.NewDashboardRepository(db),
		sqlite.NewAttendanceRepository(db),
		sqlite.NewLeaveRequestRepository(db),
		sqlite.NewEmployeeRepository(db),
		sqlite.NewPayrollRepository(db),
		time.UTC,
	)
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC) }
	return svc, db
}

func asUser(id int64, role user.Role) context.Context {
	return auth.NewContext(context.Background(), auth.Principal{UserID: id, Role: role})
}

func mustExec(t *testing.T, db *database.DB, query string, args ...any) {
	t.Helper()
	_, err := db.ExecContext(context.Background(), query, args...)
	require.NoError(t, err)
}

func TestGetEmployeeDashboard(t *testing.T) {
	svc, db := newTestDashboardService(t)
	alice := sqlitetest.InsertUser(t, db, "Alice", "alice@example.com", "EMPLOYEE")

	mustExec(t, db, `INSERT INTO attendance (user_id, date, check_in, status) VALUES (?, '2024-03-05', '2024-03-05T09:00:00Z', 'Present')`, alice)
	mustExec(t, db, `INSERT INTO attendance (user_id, date, status) VALUES (?, '2024-03-04', 'Half-day')`, alice)
	mustExec(t, db, `INSERT INTO attendance (user_id, date, status) VALUES (?, '2024-03-01', 'Leave')`, alice)
	mustExec(t, db, `INSERT INTO attendance (user_id, date, status) VALUES (?, '2024-02-28', 'Present')`, alice)
	mustExec(t, db, `INSERT INTO leave_requests (user_id, leave_type, start_date, end_date, status) VALUES (?, 'Paid', '2024-03-01', '2024-03-01', 'Approved')`, alice)
	mustExec(t, db, `INSERT INTO leave_requests (user_id, leave_type, start_date, end_date, status) VALUES (?, 'Sick', '2024-04-01', '2024-04-02', 'Pending')`, alice)
	mustExec(t, db, `INSERT INTO payroll (user_id, month, year, net_pay) VALUES (?, 3, 2024, '4200.00')`, alice)

	resp, err := svc.GetEmployeeDashboard(asUser(alice, user.RoleEmployee))
	require.NoError(t, err)

	assert.Equal(t, "2024-03-05", resp.Date)
	require.NotNil(t, resp.AttendanceToday)
	assert.Equal(t, attendance.StatusPresent, resp.AttendanceToday.Status)
	assert.NotNil(t, resp.AttendanceToday.CheckIn)

	assert.Equal(t, 1, resp.AttendanceSummary.Present)
	assert.Equal(t, 1, resp.AttendanceSummary.HalfDay)
	assert.Equal(t, 1, resp.AttendanceSummary.Leave)

	assert.Equal(t, 2, resp.LeaveSummary.Total)
	assert.Equal(t, 1, resp.LeaveSummary.Pending)
	assert.Equal(t, 1, resp.LeaveSummary.Approved)
	assert.Equal(t, 1, resp.LeaveSummary.ApprovedDays)

	require.NotNil(t, resp.CurrentNetPay)
	assert.Equal(t, "4200", resp.CurrentNetPay.String())
}

func TestGetEmployeeDashboard_EmptyDay(t *testing.T) {
	svc, db := newTestDashboardService(t)
	alice := sqlitetest.InsertUser(t, db, "Alice", "alice@example.com", "EMPLOYEE")

	resp, err := svc.GetEmployeeDashboard(asUser(alice, user.RoleEmployee))
	require.NoError(t, err)
	assert.Nil(t, resp.AttendanceToday)
	assert.Nil(t, resp.CurrentNetPay)
	assert.Zero(t, resp.LeaveSummary.Total)

	_, err = svc.GetEmployeeDashboard(asUser(alice, user.RoleAdmin))
	assert.ErrorIs(t, err, user.ErrEmployeeAccessRequired)
}

func TestGetAdminDashboardAndStatuses(t *testing.T) {
	svc, db := newTestDashboardService(t)
	admin := sqlitetest.InsertUser(t, db, "Ada", "admin@example.com", "ADMIN")
	present := sqlitetest.InsertUser(t, db, "Paul", "paul@example.com", "EMPLOYEE")
	half := sqlitetest.InsertUser(t, db, "Hana", "hana@example.com", "EMPLOYEE")
	onLeave := sqlitetest.InsertUser(t, db, "Leo", "leo@example.com", "EMPLOYEE")
	absent := sqlitetest.InsertUser(t, db, "Abe", "abe@example.com", "EMPLOYEE")

	mustExec(t, db, `INSERT INTO attendance (user_id, date, status) VALUES (?, '2024-03-05', 'Present')`, present)
	mustExec(t, db, `INSERT INTO attendance (user_id, date, status) VALUES (?, '2024-03-05', 'Half-day')`, half)
	mustExec(t, db, `INSERT INTO leave_requests (user_id, leave_type, start_date, end_date, status) VALUES (?, 'Paid', '2024-03-04', '2024-03-06', 'Approved')`, onLeave)
	mustExec(t, db, `INSERT INTO leave_requests (user_id, leave_type, start_date, end_date, status) VALUES (?, 'Sick', '2024-03-05', '2024-03-05', 'Pending')`, absent)

	resp, err := svc.GetAdminDashboard(asUser(admin, user.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, 4, resp.TotalEmployees)
	assert.Equal(t, 2, resp.PresentToday)
	assert.Equal(t, 1, resp.OnLeaveToday)
	assert.Equal(t, 1, resp.AbsentToday)
	assert.Equal(t, 1, resp.PendingLeaves)

	statuses, err := svc.GetEmployeeStatuses(asUser(admin, user.RoleAdmin))
	require.NoError(t, err)
	byID := map[int64]attendance.Status{}
	for _, s := range statuses {
		byID[s.UserID] = s.Status
	}
	assert.Equal(t, attendance.StatusPresent, byID[present])
	assert.Equal(t, attendance.StatusHalfDay, byID[half])
	assert.Equal(t, attendance.StatusLeave, byID[onLeave])
	assert.Equal(t, attendance.StatusAbsent, byID[absent])

	_, err = svc.GetAdminDashboard(asUser(present, user.RoleEmployee))
	assert.ErrorIs(t, err, user.ErrAdminOrHRAccessRequired)
}
