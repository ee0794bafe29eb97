package dashboard

import "context"

// DashboardService builds the employee and admin landing pages.
type DashboardService interface {
	// GetEmployeeDashboard summarises the authenticated employee's day, month and year
	GetEmployeeDashboard(ctx context.Context) (*EmployeeDashboardResponse, error)

	// GetAdminDashboard summarises today's headcount (Admin/HR)
	GetAdminDashboard(ctx context.Context) (*AdminDashboardResponse, error)

	// GetEmployeeStatuses lists each employee with today's effective status (Admin/HR)
	GetEmployeeStatuses(ctx context.Context) ([]EmployeeStatusResponse, error)
}
