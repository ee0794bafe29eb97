package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Attendance"

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, loc *time.Location) *AttendanceServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		loc:            loc,
		now:            time.Now,
	}
}

// Record implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Record(ctx context.Context, req attendance.RecordRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if req.Action == attendance.ActionCheckIn {
		return s.CheckIn(ctx)
	}
	return s.CheckOut(ctx)
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	principal, err := s.employee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := attendance.Day(now.In(s.loc))

	ok, err := s.attendanceRepo.CheckIn(ctx, principal.UserID, today, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !ok {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	slog.Debug("checked in", "user_id", principal.UserID, "date", today.Format("2006-01-02"))
	return s.reload(ctx, principal.UserID, today)
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	principal, err := s.employee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := attendance.Day(now.In(s.loc))

	record, err := s.attendanceRepo.GetByUserAndDate(ctx, principal.UserID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record == nil || !record.HasCheckedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.HasCheckedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	status := attendance.StatusAfterCheckOut(record.Status, *record.CheckIn, now)
	ok, err := s.attendanceRepo.CheckOut(ctx, record.ID, now, status)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !ok {
		// lost a race with a concurrent check-out
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	slog.Debug("checked out", "user_id", principal.UserID, "status", status)
	return s.reload(ctx, principal.UserID, today)
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	records, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAttendanceResponse(r))
	}
	return responses, nil
}

// ExportAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]byte, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !user.CanViewAllRecords(principal.Role) {
		return nil, user.ErrAdminOrHRAccessRequired
	}

	records, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	header := []any{"Date", "Employee", "Email", "Check In", "Check Out", "Status", "Work Hours"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, r := range records {
		resp := attendance.NewAttendanceResponse(r)
		row := []any{
			resp.Date,
			deref(resp.EmployeeName),
			deref(resp.EmployeeEmail),
			s.clock(r.CheckIn),
			s.clock(r.CheckOut),
			string(resp.Status),
			resp.WorkHours,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *AttendanceServiceImpl) list(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	if !user.CanViewAllRecords(principal.Role) {
		if filter.UserID != 0 && filter.UserID != principal.UserID {
			return nil, user.ErrAccessDenied
		}
		filter.UserID = principal.UserID
	}
	filter.Limit = attendance.MaxListRows

	return s.attendanceRepo.List(ctx, filter)
}

func (s *AttendanceServiceImpl) employee(ctx context.Context) (auth.Principal, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return auth.Principal{}, err
	}
	if !user.CanTrackAttendance(principal.Role) {
		return auth.Principal{}, user.ErrEmployeeAccessRequired
	}
	return principal, nil
}

func (s *AttendanceServiceImpl) reload(ctx context.Context, userID int64, date time.Time) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}
	return attendance.NewAttendanceResponse(*record), nil
}

// clock renders a timestamp as local wall time for the spreadsheet.
func (s *AttendanceServiceImpl) clock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(s.loc).Format("15:04")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
