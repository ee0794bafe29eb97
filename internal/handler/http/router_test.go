package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/sse"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/sqlite"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/sqlite/sqlitetest"
	attendanceService "github.com/dayflow-hr/hrms-backend-go/internal/service/attendance"
	authService "github.com/dayflow-hr/hrms-backend-go/internal/service/auth"
	dashboardService "github.com/dayflow-hr/hrms-backend-go/internal/service/dashboard"
	employeeService "github.com/dayflow-hr/hrms-backend-go/internal/service/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/service/identity"
	leaveService "github.com/dayflow-hr/hrms-backend-go/internal/service/leave"
	notificationService "github.com/dayflow-hr/hrms-backend-go/internal/service/notification"
	payrollService "github.com/dayflow-hr/hrms-backend-go/internal/service/payroll"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt"

type testApp struct {
	router *chi.Mux
	notif  *notificationService.Service
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	db := sqlitetest.NewDB(t)
	loc := time.UTC

	userRepo := sqlite.NewUserRepository(db)
	employeeRepo := sqlite.NewEmployeeRepository(db)
	attendanceRepo := sqlite.NewAttendanceRepository(db)
	leaveRepo := sqlite.NewLeaveRequestRepository(db)
	payrollRepo := sqlite.NewPayrollRepository(db)

	jwtSvc := jwt.NewJWTService(testSecret, time.Hour, "session", false)
	allocator := identity.NewAllocator(employeeRepo, userRepo).WithBcryptCost(bcrypt.MinCost)

	notif := notificationService.NewNotificationService(sqlite.NewNotificationRepository(db), sse.NewHub(), notificationService.Config{})
	t.Cleanup(notif.Stop)

	dashSvc := dashboardService.NewDashboardService(sqlite.NewDashboardRepository(db), attendanceRepo, leaveRepo, employeeRepo, payrollRepo, loc)
	requests := leaveService.NewRequestService(db, leaveRepo, attendanceRepo, leave.DefaultPolicy())

	handlers := Handlers{
		Auth:         NewAuthHandler(jwtSvc, authService.NewAuthService(db, userRepo, jwtSvc, allocator, "Dayflow", loc), nil, false),
		Employee:     NewEmployeeHandler(employeeService.NewEmployeeService(db, userRepo, employeeRepo, allocator), dashSvc),
		Attendance:   NewAttendanceHandler(attendanceService.NewAttendanceService(attendanceRepo, loc)),
		Leave:        NewLeaveHandler(leaveService.NewLeaveService(requests, notif, loc)),
		Payroll:      NewPayrollHandler(payrollService.NewPayrollService(payrollRepo, notif)),
		Notification: NewNotificationHandler(notif),
		Dashboard:    NewDashboardHandler(dashSvc),
		Health:       NewHealthHandler(db, "test"),
	}

	return testApp{
		router: NewRouter(RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}}, jwtSvc, handlers),
		notif:  notif,
	}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (a testApp) do(t *testing.T, method, path string, body any, session *http.Cookie) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if session != nil {
		req.AddCookie(session)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var resp apiResponse
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func (a testApp) register(t *testing.T, name, email, role string) (*http.Cookie, map[string]any) {
	t.Helper()
	rec, resp := a.do(t, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name":     name,
		"email":    email,
		"password": "password123",
		"userType": role,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var data map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return sessionCookie(t, rec), data
}

func TestRouter_Health(t *testing.T) {
	app := newTestApp(t)

	rec, resp := app.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
}

func TestRouter_RequiresSession(t *testing.T) {
	app := newTestApp(t)

	rec, resp := app.do(t, http.MethodGet, "/api/v1/employees", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Not authenticated", resp.Error.Message)

	forged := &http.Cookie{Name: "session", Value: "not-a-jwt"}
	rec, _ = app.do(t, http.MethodGet, "/api/v1/auth/me", nil, forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RegisterLoginLogout(t *testing.T) {
	app := newTestApp(t)

	session, data := app.register(t, "Jane Doe", "jane@example.com", "EMPLOYEE")
	assert.Equal(t, "/dashboard", data["redirectUrl"])
	userData := data["user"].(map[string]any)
	assert.Regexp(t, `^DXJADO\d{8}$`, userData["employeeId"])

	_, adminData := app.register(t, "Ada Admin", "ada@example.com", "ADMIN")
	assert.Equal(t, "/admin", adminData["redirectUrl"])

	rec, resp := app.do(t, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name": "Jane Again", "email": "JANE@example.com", "password": "password123", "userType": "EMPLOYEE",
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already registered", resp.Error.Message)

	rec, _ = app.do(t, http.MethodGet, "/api/v1/auth/me", nil, session)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = app.do(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email": "jane@example.com", "password": "wrong-password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, resp.Success)

	rec, _ = app.do(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"loginId": userData["employeeId"], "password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fresh := sessionCookie(t, rec)

	rec, _ = app.do(t, http.MethodPost, "/api/v1/auth/logout", nil, fresh)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = app.do(t, http.MethodGet, "/api/v1/auth/me", nil, fresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Other sessions stay valid
	rec, _ = app.do(t, http.MethodGet, "/api/v1/auth/me", nil, session)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_EmployeeProvisioning(t *testing.T) {
	app := newTestApp(t)
	admin, _ := app.register(t, "Ada Admin", "ada@example.com", "ADMIN")
	employee, _ := app.register(t, "Eve Employee", "eve@example.com", "EMPLOYEE")

	payload := map[string]any{
		"companyName": "Odoo India",
		"name":        "John Smith",
		"email":       "john@example.com",
		"joiningDate": "2024-01-15",
	}

	rec, resp := app.do(t, http.MethodPost, "/api/v1/employees", payload, employee)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin/HR access only", resp.Error.Message)

	rec, resp = app.do(t, http.MethodPost, "/api/v1/employees/create", payload, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID             int64  `json:"id"`
		EmployeeID     string `json:"employeeId"`
		SystemPassword string `json:"systemPassword"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "OIJOSM20240001", created.EmployeeID)
	assert.Len(t, created.SystemPassword, 12)

	rec, _ = app.do(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"loginId": created.EmployeeID, "password": created.SystemPassword,
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = app.do(t, http.MethodPost, "/api/v1/employees", payload, admin)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already registered", resp.Error.Message)

	rec, _ = app.do(t, http.MethodDelete, "/api/v1/employees/1", nil, employee)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_AttendanceFlow(t *testing.T) {
	app := newTestApp(t)
	employee, _ := app.register(t, "Eve Employee", "eve@example.com", "EMPLOYEE")
	admin, _ := app.register(t, "Ada Admin", "ada@example.com", "ADMIN")

	rec, resp := app.do(t, http.MethodPost, "/api/v1/attendance", map[string]string{"action": "checkout"}, employee)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please check in first", resp.Error.Message)

	rec, _ = app.do(t, http.MethodPost, "/api/v1/attendance", map[string]string{"action": "checkin"}, employee)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, resp = app.do(t, http.MethodPost, "/api/v1/attendance", map[string]string{"action": "checkin"}, employee)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Already checked in today", resp.Error.Message)

	rec, resp = app.do(t, http.MethodPost, "/api/v1/attendance", map[string]string{"action": "checkout"}, employee)
	require.Equal(t, http.StatusOK, rec.Code)
	var record struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &record))
	assert.Equal(t, "Half-day", record.Status)

	rec, resp = app.do(t, http.MethodPost, "/api/v1/attendance", map[string]string{"action": "checkout"}, employee)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Already checked out today", resp.Error.Message)

	rec, resp = app.do(t, http.MethodPost, "/api/v1/attendance", map[string]string{"action": "checkin"}, admin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Only employees can perform this action", resp.Error.Message)

	rec, resp = app.do(t, http.MethodPost, "/api/v1/attendance", map[string]string{"action": "teleport"}, employee)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `Invalid action. Use "checkin" or "checkout"`, resp.Error.Message)

	rec, resp = app.do(t, http.MethodGet, "/api/v1/attendance?userId=999", nil, employee)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied", resp.Error.Message)

	rec, _ = app.do(t, http.MethodGet, "/api/v1/attendance/export", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.NotZero(t, rec.Body.Len())

	rec, _ = app.do(t, http.MethodGet, "/api/v1/attendance/export", nil, employee)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_LeaveDecision(t *testing.T) {
	app := newTestApp(t)
	employee, _ := app.register(t, "Eve Employee", "eve@example.com", "EMPLOYEE")
	admin, _ := app.register(t, "Ada Admin", "ada@example.com", "ADMIN")
	hr, _ := app.register(t, "Hal Hr", "hal@example.com", "HR")

	start := time.Now().UTC().AddDate(0, 0, 10).Format("2006-01-02")
	end := time.Now().UTC().AddDate(0, 0, 12).Format("2006-01-02")

	rec, resp := app.do(t, http.MethodPost, "/api/v1/leave", map[string]string{
		"leaveType": "Paid", "startDate": end, "endDate": start,
	}, employee)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Start date must be before end date", resp.Error.Message)

	rec, resp = app.do(t, http.MethodPost, "/api/v1/leave", map[string]string{
		"leaveType": "Paid", "startDate": start, "endDate": end,
	}, employee)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID int64 `json:"leaveId"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	path := "/api/v1/leave/" + jsonNumber(created.ID)

	rec, resp = app.do(t, http.MethodPut, path, map[string]string{"status": "Approved"}, hr)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access only", resp.Error.Message)

	rec, _ = app.do(t, http.MethodPut, path, map[string]string{"status": "Approved"}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, resp = app.do(t, http.MethodPut, path, map[string]string{"status": "Rejected"}, admin)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Leave request has already been processed", resp.Error.Message)

	rec, resp = app.do(t, http.MethodPost, "/api/v1/leave", map[string]string{
		"leaveType": "Sick", "startDate": end, "endDate": end,
	}, employee)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You already have approved leave during this period", resp.Error.Message)

	rec, resp = app.do(t, http.MethodGet, "/api/v1/attendance?startDate="+start+"&endDate="+end, nil, employee)
	require.Equal(t, http.StatusOK, rec.Code)
	var days []struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &days))
	require.Len(t, days, 3)
	for _, d := range days {
		assert.Equal(t, "Leave", d.Status)
	}

	app.notif.Stop()
	rec, resp = app.do(t, http.MethodGet, "/api/v1/notifications/unread-count", nil, employee)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"unreadCount":1}`, string(resp.Data))
}

func TestRouter_PayrollPermissions(t *testing.T) {
	app := newTestApp(t)
	_, empData := app.register(t, "Eve Employee", "eve@example.com", "EMPLOYEE")
	employeeID := empData["user"].(map[string]any)["id"]
	hr, _ := app.register(t, "Hal Hr", "hal@example.com", "HR")
	admin, _ := app.register(t, "Ada Admin", "ada@example.com", "ADMIN")

	body := map[string]any{"userId": employeeID, "month": 3, "year": 2024, "netPay": "4200.00"}

	rec, resp := app.do(t, http.MethodPost, "/api/v1/payroll", body, hr)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access only", resp.Error.Message)

	rec, _ = app.do(t, http.MethodPost, "/api/v1/payroll", body, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, resp = app.do(t, http.MethodPost, "/api/v1/payroll", body, admin)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Payroll record already exists for this month/year", resp.Error.Message)

	rec, _ = app.do(t, http.MethodGet, "/api/v1/payroll", nil, hr)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Dashboards(t *testing.T) {
	app := newTestApp(t)
	employee, _ := app.register(t, "Eve Employee", "eve@example.com", "EMPLOYEE")
	admin, _ := app.register(t, "Ada Admin", "ada@example.com", "ADMIN")

	rec, _ := app.do(t, http.MethodPost, "/api/v1/attendance", map[string]string{"action": "checkin"}, employee)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp := app.do(t, http.MethodGet, "/api/v1/dashboard/admin", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var board struct {
		TotalEmployees int `json:"totalEmployees"`
		PresentToday   int `json:"presentToday"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &board))
	assert.Equal(t, 1, board.TotalEmployees)
	assert.Equal(t, 1, board.PresentToday)

	rec, _ = app.do(t, http.MethodGet, "/api/v1/dashboard/admin", nil, employee)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = app.do(t, http.MethodGet, "/api/v1/dashboard/employee", nil, employee)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = app.do(t, http.MethodGet, "/api/v1/employees/status", nil, admin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
