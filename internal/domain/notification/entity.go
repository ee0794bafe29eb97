package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeLeaveUpdate        NotificationType = "LEAVE_UPDATE"
	TypeAttendanceReminder NotificationType = "ATTENDANCE_REMINDER"
	TypePayrollUpdate      NotificationType = "PAYROLL_UPDATE"
	TypeSystem             NotificationType = "SYSTEM"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeLeaveUpdate,
		TypeAttendanceReminder,
		TypePayrollUpdate,
		TypeSystem,
	}
}

// Notification represents a notification entity
type Notification struct {
	ID        int64
	UserID    int64
	Type      NotificationType
	Title     string
	Message   string
	Link      *string
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}
