package http

import (
	"net/http"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/dashboard"
	"github.com/dayflow-hr/hrms-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetEmployeeDashboard returns the employee's day, month and year at a glance
	GetEmployeeDashboard(w http.ResponseWriter, r *http.Request)
	// GetAdminDashboard returns today's headcount and the status board
	GetAdminDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetEmployeeDashboard handles GET /dashboard/employee
func (h *dashboardHandlerImpl) GetEmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetEmployeeDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetAdminDashboard handles GET /dashboard/admin
func (h *dashboardHandlerImpl) GetAdminDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetAdminDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
