package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/notification"
)

// Notifier delivers a single notification.
type Notifier interface {
	Notify(ctx context.Context, req notification.CreateNotificationRequest) error
}

// AttendanceJobs reminds employees who have not checked in by the reminder hour.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	leaveRepo      leave.LeaveRequestRepository
	notifier       Notifier
	loc            *time.Location
	reminderHour   int
	now            func() time.Time

	mu       sync.Mutex
	lastSent time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
	notifier Notifier,
	loc *time.Location,
	reminderHour int,
) *AttendanceJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		leaveRepo:      leaveRepo,
		notifier:       notifier,
		loc:            loc,
		reminderHour:   reminderHour,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("attendance_reminder", interval, j.SendCheckInReminders)
}

// SendCheckInReminders sends at most one ATTENDANCE_REMINDER per employee per day, once
// the local clock has passed the reminder hour. Employees with a row for today or
// approved leave covering today are skipped.
func (j *AttendanceJobs) SendCheckInReminders(ctx context.Context) error {
	local := j.now().In(j.loc)
	if local.Hour() < j.reminderHour {
		return nil
	}
	today := attendance.Day(local)

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.lastSent.Equal(today) {
		return nil
	}

	employees, err := j.employeeRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}
	recorded, err := j.attendanceRepo.StatusesOn(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to load today's attendance: %w", err)
	}
	onLeave, err := j.leaveRepo.ApprovedUsersOn(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to load today's leave: %w", err)
	}

	sent := 0
	for _, e := range employees {
		if _, ok := recorded[e.ID]; ok || onLeave[e.ID] {
			continue
		}
		err := j.notifier.Notify(ctx, notification.CreateNotificationRequest{
			UserID:  e.ID,
			Type:    notification.TypeAttendanceReminder,
			Title:   "Check-in reminder",
			Message: fmt.Sprintf("You have not checked in for %s yet.", today.Format("2006-01-02")),
		})
		if err != nil {
			slog.Warn("Cron: attendance reminder not sent", "user_id", e.ID, "error", err)
			continue
		}
		sent++
	}

	j.lastSent = today
	slog.Info("Cron: attendance reminders sent", "date", today.Format("2006-01-02"), "count", sent)
	return nil
}
