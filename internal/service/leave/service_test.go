package leave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/notification"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/sqlite"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/sqlite/sqlitetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.CreateNotificationRequest
}

func (n *recordingNotifier) Notify(_ context.Context, req notification.CreateNotificationRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, req)
	return nil
}

// failingAttendanceRepo breaks MarkLeave so approval rollback can be observed.
type failingAttendanceRepo struct {
	attendance.AttendanceRepository
}

func (failingAttendanceRepo) MarkLeave(context.Context, int64, []time.Time) error {
	return errors.New("disk full")
}

type fixture struct {
	svc      *LeaveServiceImpl
	db       *database.DB
	notifier *recordingNotifier
	employee int64
	other    int64
	hr       int64
	admin    int64
}

func newFixture(t *testing.T, policy leave.Policy) fixture {
	db := sqlitetest.NewDB(t)
	return newFixtureWithRepo(t, db, sqlite.NewAttendanceRepository(db), policy)
}

func newFixtureWithRepo(t *testing.T, db *database.DB, attendanceRepo attendance.AttendanceRepository, policy leave.Policy) fixture {
	notifier := &recordingNotifier{}
	requests := NewRequestService(db, sqlite.NewLeaveRequestRepository(db), attendanceRepo, policy)
	svc := NewLeaveService(requests, notifier, time.UTC)
	svc.now = func() time.Time { return time.Date(2024, 2, 26, 10, 0, 0, 0, time.UTC) }

	return fixture{
		svc:      svc,
		db:       db,
		notifier: notifier,
		employee: sqlitetest.InsertUser(t, db, "Alice", "alice@example.com", "EMPLOYEE"),
		other:    sqlitetest.InsertUser(t, db, "Bob", "bob@example.com", "EMPLOYEE"),
		hr:       sqlitetest.InsertUser(t, db, "Helen", "hr@example.com", "HR"),
		admin:    sqlitetest.InsertUser(t, db, "Ada", "admin@example.com", "ADMIN"),
	}
}

func asUser(id int64, role user.Role) context.Context {
	return auth.NewContext(context.Background(), auth.Principal{UserID: id, Role: role})
}

func (f fixture) submit(t *testing.T, start, end string) leave.LeaveRequestResponse {
	t.Helper()
	resp, err := f.svc.CreateLeaveRequest(asUser(f.employee, user.RoleEmployee), leave.CreateLeaveRequestRequest{
		LeaveType: "Paid",
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	return resp
}

func TestLeaveService_CreateLeaveRequest(t *testing.T) {
	f := newFixture(t, leave.DefaultPolicy())

	resp := f.submit(t, "2024-03-01", "2024-03-03")
	assert.NotZero(t, resp.ID)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, 3, resp.Days)
	assert.Equal(t, "Alice", *resp.UserName)

	_, err := f.svc.CreateLeaveRequest(asUser(f.hr, user.RoleHR), leave.CreateLeaveRequestRequest{
		LeaveType: "Paid", StartDate: "2024-03-01", EndDate: "2024-03-01",
	})
	assert.ErrorIs(t, err, user.ErrEmployeeAccessRequired)
}

func TestLeaveService_CreateLeaveRequest_Validation(t *testing.T) {
	f := newFixture(t, leave.DefaultPolicy())
	ctx := asUser(f.employee, user.RoleEmployee)

	cases := []struct {
		name string
		req  leave.CreateLeaveRequestRequest
		msg  string
	}{
		{"missing fields", leave.CreateLeaveRequestRequest{LeaveType: "Paid"}, "Leave type, start date, and end date are required"},
		{"unknown type", leave.CreateLeaveRequestRequest{LeaveType: "Vacation", StartDate: "2024-03-01", EndDate: "2024-03-01"}, "Invalid leave type"},
		{"reversed window", leave.CreateLeaveRequestRequest{LeaveType: "Sick", StartDate: "2024-03-05", EndDate: "2024-03-01"}, "Start date must be before end date"},
		{"too long", leave.CreateLeaveRequestRequest{LeaveType: "Unpaid", StartDate: "2024-01-01", EndDate: "2025-06-01"}, "cannot exceed 366 days"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CreateLeaveRequest(ctx, tc.req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.Summary(), tc.msg)
		})
	}
}

func TestLeaveService_UnsetMaxDaysKeepsDefaultCap(t *testing.T) {
	policy := leave.DefaultPolicy()
	policy.MaxDays = 0
	f := newFixture(t, policy)

	_, err := f.svc.CreateLeaveRequest(asUser(f.employee, user.RoleEmployee), leave.CreateLeaveRequestRequest{
		LeaveType: "Unpaid", StartDate: "2024-03-01", EndDate: "2026-03-01",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Summary(), "cannot exceed 366 days")
	assert.Zero(t, sqlitetest.Count(t, f.db, `SELECT COUNT(*) FROM leave_requests`))
}

func TestLeaveService_ApproveMarksEveryDayAsLeave(t *testing.T) {
	f := newFixture(t, leave.DefaultPolicy())
	ctx := context.Background()

	_, err := f.db.ExecContext(ctx, `INSERT INTO attendance (user_id, date, check_in, status) VALUES (?, '2024-03-02', '2024-03-02T09:00:00Z', 'Present')`, f.employee)
	require.NoError(t, err)

	req := f.submit(t, "2024-03-01", "2024-03-03")
	comment := "enjoy"
	resp, err := f.svc.DecideLeaveRequest(asUser(f.admin, user.RoleAdmin), req.ID, leave.DecisionRequest{
		Status:       "Approved",
		AdminComment: &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, resp.Status)
	assert.Equal(t, "enjoy", *resp.AdminComment)

	assert.Equal(t, 3, sqlitetest.Count(t, f.db,
		`SELECT COUNT(*) FROM attendance WHERE user_id = ? AND status = 'Leave' AND date BETWEEN '2024-03-01' AND '2024-03-03'`, f.employee))
	assert.Equal(t, 0, sqlitetest.Count(t, f.db, `SELECT COUNT(*) FROM attendance WHERE status = 'Present'`))

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, f.employee, f.notifier.sent[0].UserID)
	assert.Equal(t, notification.TypeLeaveUpdate, f.notifier.sent[0].Type)
}

func TestLeaveService_RejectHasNoAttendanceSideEffects(t *testing.T) {
	f := newFixture(t, leave.DefaultPolicy())

	req := f.submit(t, "2024-03-01", "2024-03-03")
	resp, err := f.svc.DecideLeaveRequest(asUser(f.admin, user.RoleAdmin), req.ID, leave.DecisionRequest{Status: "Rejected"})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, resp.Status)

	assert.Equal(t, 0, sqlitetest.Count(t, f.db, `SELECT COUNT(*) FROM attendance`))
}

func TestLeaveService_DecisionIsTerminal(t *testing.T) {
	f := newFixture(t, leave.DefaultPolicy())
	admin := asUser(f.admin, user.RoleAdmin)

	req := f.submit(t, "2024-03-01", "2024-03-01")
	_, err := f.svc.DecideLeaveRequest(admin, req.ID, leave.DecisionRequest{Status: "Rejected"})
	require.NoError(t, err)

	_, err = f.svc.DecideLeaveRequest(admin, req.ID, leave.DecisionRequest{Status: "Approved"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
	assert.Equal(t, 0, sqlitetest.Count(t, f.db, `SELECT COUNT(*) FROM attendance`))
}

func TestLeaveService_DecideRequiresAdmin(t *testing.T) {
	f := newFixture(t, leave.DefaultPolicy())
	req := f.submit(t, "2024-03-01", "2024-03-01")

	_, err := f.svc.DecideLeaveRequest(asUser(f.hr, user.RoleHR), req.ID, leave.DecisionRequest{Status: "Approved"})
	assert.ErrorIs(t, err, user.ErrAdminAccessRequired)

	_, err = f.svc.DecideLeaveRequest(asUser(f.admin, user.RoleAdmin), req.ID, leave.DecisionRequest{Status: "Maybe"})
	assert.Error(t, err)

	_, err = f.svc.DecideLeaveRequest(asUser(f.admin, user.RoleAdmin), 9999, leave.DecisionRequest{Status: "Approved"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveService_ApprovalRollsBackOnFailure(t *testing.T) {
	db := sqlitetest.NewDB(t)
	f := newFixtureWithRepo(t, db, failingAttendanceRepo{sqlite.NewAttendanceRepository(db)}, leave.DefaultPolicy())

	req := f.submit(t, "2024-03-01", "2024-03-03")
	_, err := f.svc.DecideLeaveRequest(asUser(f.admin, user.RoleAdmin), req.ID, leave.DecisionRequest{Status: "Approved"})
	require.Error(t, err)

	got, err := f.svc.GetLeaveRequest(asUser(f.admin, user.RoleAdmin), req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, got.Status)
	assert.Empty(t, f.notifier.sent)
}

func TestLeaveService_OverlapWithApprovedLeave(t *testing.T) {
	f := newFixture(t, leave.DefaultPolicy())
	ctx := asUser(f.employee, user.RoleEmployee)

	req := f.submit(t, "2024-03-01", "2024-03-05")
	_, err := f.svc.DecideLeaveRequest(asUser(f.admin, user.RoleAdmin), req.ID, leave.DecisionRequest{Status: "Approved"})
	require.NoError(t, err)

	_, err = f.svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{LeaveType: "Sick", StartDate: "2024-03-04", EndDate: "2024-03-08"})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	_, err = f.svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{LeaveType: "Sick", StartDate: "2024-03-06", EndDate: "2024-03-08"})
	assert.NoError(t, err)
}

func TestLeaveService_NoticePeriod(t *testing.T) {
	policy := leave.DefaultPolicy()
	policy.EnforceNotice = true
	f := newFixture(t, policy)
	ctx := asUser(f.employee, user.RoleEmployee)

	// today is 2024-02-26
	_, err := f.svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{LeaveType: "Paid", StartDate: "2024-02-27", EndDate: "2024-02-27"})
	assert.ErrorIs(t, err, leave.ErrInsufficientNotice)

	_, err = f.svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{LeaveType: "Paid", StartDate: "2024-02-28", EndDate: "2024-02-28"})
	assert.NoError(t, err)

	_, err = f.svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{LeaveType: "Sick", StartDate: "2024-02-27", EndDate: "2024-02-27"})
	assert.NoError(t, err)

	_, err = f.svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{LeaveType: "Unpaid", StartDate: "2024-02-26", EndDate: "2024-02-26"})
	assert.NoError(t, err)
}

func TestLeaveService_Visibility(t *testing.T) {
	f := newFixture(t, leave.DefaultPolicy())
	req := f.submit(t, "2024-03-01", "2024-03-01")
	later := f.submit(t, "2024-04-01", "2024-04-01")

	_, err := f.svc.GetLeaveRequest(asUser(f.other, user.RoleEmployee), req.ID)
	assert.ErrorIs(t, err, user.ErrAccessDenied)

	own, err := f.svc.ListLeaveRequests(asUser(f.other, user.RoleEmployee), leave.LeaveFilter{})
	require.NoError(t, err)
	assert.Empty(t, own)

	_, err = f.svc.ListLeaveRequests(asUser(f.other, user.RoleEmployee), leave.LeaveFilter{UserID: f.employee})
	assert.ErrorIs(t, err, user.ErrAccessDenied)

	all, err := f.svc.ListLeaveRequests(asUser(f.hr, user.RoleHR), leave.LeaveFilter{UserID: f.employee})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := f.svc.ListPendingRequests(asUser(f.hr, user.RoleHR))
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, req.ID, pending[0].ID)
	assert.Equal(t, later.ID, pending[1].ID)
	assert.Equal(t, "alice@example.com", *pending[0].UserEmail)

	_, err = f.svc.ListPendingRequests(asUser(f.employee, user.RoleEmployee))
	assert.ErrorIs(t, err, user.ErrAdminOrHRAccessRequired)
}
