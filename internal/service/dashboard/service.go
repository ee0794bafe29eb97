package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/dashboard"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	employeeRepo   employee.EmployeeRepository
	payrollRepo    payroll.PayrollRepository
	loc            *time.Location
	now            func() time.Time
}

func NewDashboardService(
	repo dashboard.DashboardRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	payrollRepo payroll.PayrollRepository,
	loc *time.Location,
) *DashboardServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		attendanceRepo:      attendanceRepo,
		leaveRepo:           leaveRepo,
		employeeRepo:        employeeRepo,
		payrollRepo:         payrollRepo,
		loc:                 loc,
		now:                 time.Now,
	}
}

func (s *DashboardServiceImpl) today() time.Time {
	return attendance.Day(s.now().In(s.loc))
}

// GetEmployeeDashboard returns the employee landing page using parallel goroutines,
// one query each.
func (s *DashboardServiceImpl) GetEmployeeDashboard(ctx context.Context) (*dashboard.EmployeeDashboardResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !user.HasPermission(principal.Role, user.PermissionDashboardEmployee) {
		return nil, user.ErrEmployeeAccessRequired
	}

	today := s.today()
	year, month := today.Year(), int(today.Month())

	var (
		todayRecord   *attendance.Attendance
		attendanceSum dashboard.AttendanceSummaryData
		leaveSum      dashboard.LeaveSummaryData
		netPay        *decimal.Decimal
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		todayRecord, err = s.attendanceRepo.GetByUserAndDate(gCtx, principal.UserID, today)
		return err
	})

	g.Go(func() error {
		var err error
		attendanceSum, err = s.DashboardRepository.AttendanceSummary(gCtx, principal.UserID, year, month)
		return err
	})

	g.Go(func() error {
		var err error
		leaveSum, err = s.DashboardRepository.LeaveSummary(gCtx, principal.UserID, year)
		return err
	})

	g.Go(func() error {
		record, err := s.payrollRepo.GetForPeriod(gCtx, principal.UserID, month, year)
		if errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		netPay = &record.NetPay
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &dashboard.EmployeeDashboardResponse{
		Date:              today.Format("2006-01-02"),
		AttendanceSummary: attendanceSum,
		LeaveSummary:      leaveSum,
		CurrentNetPay:     netPay,
	}
	if todayRecord != nil {
		view := attendance.NewAttendanceResponse(*todayRecord)
		resp.AttendanceToday = &dashboard.AttendanceTodayData{
			Status:   view.Status,
			CheckIn:  view.CheckIn,
			CheckOut: view.CheckOut,
		}
	}
	return resp, nil
}

// GetAdminDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetAdminDashboard(ctx context.Context) (*dashboard.AdminDashboardResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !user.CanViewAllRecords(principal.Role) {
		return nil, user.ErrAdminOrHRAccessRequired
	}

	var (
		statuses []dashboard.EmployeeStatusResponse
		pending  int
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		statuses, err = s.statuses(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		pending, err = s.DashboardRepository.CountPendingLeave(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &dashboard.AdminDashboardResponse{
		Date:           s.today().Format("2006-01-02"),
		TotalEmployees: len(statuses),
		PendingLeaves:  pending,
		Employees:      statuses,
	}
	for _, st := range statuses {
		switch st.Status {
		case attendance.StatusPresent, attendance.StatusHalfDay:
			resp.PresentToday++
		case attendance.StatusLeave:
			resp.OnLeaveToday++
		default:
			resp.AbsentToday++
		}
	}
	return resp, nil
}

// GetEmployeeStatuses implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetEmployeeStatuses(ctx context.Context) ([]dashboard.EmployeeStatusResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !user.CanViewAllRecords(principal.Role) {
		return nil, user.ErrAdminOrHRAccessRequired
	}
	return s.statuses(ctx)
}

// statuses resolves today's status per employee. Approved leave wins over attendance,
// no row at all means Absent.
func (s *DashboardServiceImpl) statuses(ctx context.Context) ([]dashboard.EmployeeStatusResponse, error) {
	today := s.today()

	var (
		employees []user.User
		recorded  map[int64]attendance.Status
		onLeave   map[int64]bool
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		employees, err = s.employeeRepo.List(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		recorded, err = s.attendanceRepo.StatusesOn(gCtx, today)
		return err
	})

	g.Go(func() error {
		var err error
		onLeave, err = s.leaveRepo.ApprovedUsersOn(gCtx, today)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]dashboard.EmployeeStatusResponse, 0, len(employees))
	for _, e := range employees {
		result = append(result, dashboard.EmployeeStatusResponse{
			UserID:     e.ID,
			Name:       e.Name,
			EmployeeID: e.LoginID,
			Department: e.Department,
			Status:     resolveStatus(e.ID, recorded, onLeave),
		})
	}
	return result, nil
}

func resolveStatus(userID int64, recorded map[int64]attendance.Status, onLeave map[int64]bool) attendance.Status {
	if onLeave[userID] {
		return attendance.StatusLeave
	}
	if status, ok := recorded[userID]; ok {
		return status
	}
	return attendance.StatusAbsent
}
