package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Leave Management
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Attendance Management
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceExport  Permission = "attendance.export"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"
	PermissionEmployeeDelete  Permission = "employee.delete"

	// Payroll
	PermissionPayrollViewOwn Permission = "payroll.view_own"
	PermissionPayrollViewAll Permission = "payroll.view_all"
	PermissionPayrollManage  Permission = "payroll.manage"

	// Dashboards
	PermissionDashboardEmployee Permission = "dashboard.employee"
	PermissionDashboardAdmin    Permission = "dashboard.admin"
)

var hrPermissions = []Permission{
	PermissionViewOwnProfile,
	PermissionEditOwnProfile,
	PermissionLeaveViewOwn,
	PermissionLeaveViewAll,
	PermissionAttendanceViewOwn,
	PermissionAttendanceViewAll,
	PermissionAttendanceExport,
	PermissionEmployeeViewAll,
	PermissionEmployeeManage,
	PermissionPayrollViewOwn,
	PermissionPayrollViewAll,
	PermissionDashboardAdmin,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: append([]Permission{
		// Admin has everything HR has plus the destructive and financial writes
		PermissionLeaveApprove,
		PermissionEmployeeDelete,
		PermissionPayrollManage,
	}, hrPermissions...),
	RoleHR: hrPermissions,
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionPayrollViewOwn,
		PermissionDashboardEmployee,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// DeniedError is the error reported when a role lacks permission.
func DeniedError(permission Permission) error {
	switch permission {
	case PermissionLeaveApprove, PermissionEmployeeDelete, PermissionPayrollManage:
		return ErrAdminAccessRequired
	case PermissionLeaveCreate, PermissionAttendanceCreate, PermissionDashboardEmployee:
		return ErrEmployeeAccessRequired
	default:
		return ErrAdminOrHRAccessRequired
	}
}

// CanManageEmployees reports whether role may create and edit employee records.
func CanManageEmployees(role Role) bool {
	return HasPermission(role, PermissionEmployeeManage)
}

// CanDeleteEmployees reports whether role may delete employee accounts.
func CanDeleteEmployees(role Role) bool {
	return HasPermission(role, PermissionEmployeeDelete)
}

// CanViewAllRecords reports whether role may read any employee's rows.
func CanViewAllRecords(role Role) bool {
	return HasPermission(role, PermissionEmployeeViewAll)
}

// CanApproveLeave reports whether role may decide leave requests.
func CanApproveLeave(role Role) bool {
	return HasPermission(role, PermissionLeaveApprove)
}

// CanManagePayroll reports whether role may write payroll records.
func CanManagePayroll(role Role) bool {
	return HasPermission(role, PermissionPayrollManage)
}

// CanTrackAttendance reports whether role checks in and out.
func CanTrackAttendance(role Role) bool {
	return HasPermission(role, PermissionAttendanceCreate)
}

// CanAccessUser reports whether an actor with role and id may touch rows owned by
// targetID. Privileged roles reach everyone, employees only themselves.
func CanAccessUser(role Role, actorID, targetID int64) bool {
	return actorID == targetID || CanViewAllRecords(role)
}
