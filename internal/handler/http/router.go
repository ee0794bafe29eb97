package http

import (
	"log/slog"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterConfig struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Payroll      PayrollHandler
	Notification NotificationHandler
	Dashboard    DashboardHandler
	Health       *HealthHandler

	// Pages mounts the server-rendered pages when set
	Pages func(r chi.Router)
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", h.Health.Check)

	r.Route("/api/v1", func(r chi.Router) {
		authenticate := middleware.Authenticate(JWTService)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Get("/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/", h.Employee.ListEmployees)
				r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/status", h.Employee.ListStatuses)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.CreateEmployee)
					r.Post("/create", h.Employee.CreateEmployee)
				})

				r.Route("/{id}", func(r chi.Router) {
					// Ownership is checked by the service
					r.Get("/", h.Employee.GetEmployee)
					r.Put("/", h.Employee.UpdateEmployee)
					r.With(middleware.RequirePermission(user.PermissionEmployeeDelete)).Delete("/", h.Employee.DeleteEmployee)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/", h.Attendance.Record)
				r.Get("/", h.Attendance.List)
				r.With(middleware.RequirePermission(user.PermissionAttendanceExport)).Get("/export", h.Attendance.Export)
			})

			r.Route("/leave", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.CreateRequest)
				r.Get("/", h.Leave.ListRequests)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/pending", h.Leave.ListPending)
				r.Get("/{id}", h.Leave.GetRequest)
				r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Put("/{id}", h.Leave.DecideRequest)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/", h.Payroll.ListPayrollRecords)
				r.Get("/{id}", h.Payroll.GetPayrollRecord)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollManage))
					r.Post("/", h.Payroll.CreatePayrollRecord)
					r.Put("/{id}", h.Payroll.UpdatePayrollRecord)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Get("/stream", h.Notification.Stream)
				r.Put("/read-all", h.Notification.MarkAllAsRead)
				r.Put("/{id}/read", h.Notification.MarkAsRead)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionDashboardEmployee)).Get("/employee", h.Dashboard.GetEmployeeDashboard)
				r.With(middleware.RequirePermission(user.PermissionDashboardAdmin)).Get("/admin", h.Dashboard.GetAdminDashboard)
			})
		})
	})

	if h.Pages != nil {
		r.Group(h.Pages)
	}

	return r
}
