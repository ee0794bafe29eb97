package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/config"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	appHTTP "github.com/dayflow-hr/hrms-backend-go/internal/handler/http"
	"github.com/dayflow-hr/hrms-backend-go/internal/handler/web"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/cron"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/oauth"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/sse"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/sqlite"
	attendanceService "github.com/dayflow-hr/hrms-backend-go/internal/service/attendance"
	serviceAuth "github.com/dayflow-hr/hrms-backend-go/internal/service/auth"
	dashboardService "github.com/dayflow-hr/hrms-backend-go/internal/service/dashboard"
	employeeService "github.com/dayflow-hr/hrms-backend-go/internal/service/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/service/identity"
	leaveService "github.com/dayflow-hr/hrms-backend-go/internal/service/leave"
	notificationService "github.com/dayflow-hr/hrms-backend-go/internal/service/notification"
	payrollService "github.com/dayflow-hr/hrms-backend-go/internal/service/payroll"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "dayflow-hrms"),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewSQLiteDB(ctx, cfg.Database.Path, cfg.Database.BusyTimeout)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	loc := cfg.Location()

	userRepo := sqlite.NewUserRepository(db)
	employeeRepo := sqlite.NewEmployeeRepository(db)
	attendanceRepo := sqlite.NewAttendanceRepository(db)
	leaveRequestRepo := sqlite.NewLeaveRequestRepository(db)
	payrollRepo := sqlite.NewPayrollRepository(db)
	notificationRepo := sqlite.NewNotificationRepository(db)
	dashboardRepo := sqlite.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.Session.Secret, cfg.Session.Expiration, cfg.Session.CookieName, cfg.Session.CookieSecure)

	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	allocator := identity.NewAllocator(employeeRepo, userRepo)
	notifSvc := notificationService.NewNotificationService(notificationRepo, sse.NewHub(), notificationService.Config{})
	defer notifSvc.Stop()

	authService := serviceAuth.NewAuthService(db, userRepo, JWTService, allocator, cfg.Company.Name, loc)
	employeeSvc := employeeService.NewEmployeeService(db, userRepo, employeeRepo, allocator)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, loc)
	requestService := leaveService.NewRequestService(db, leaveRequestRepo, attendanceRepo, leave.Policy{
		EnforceOverlap: cfg.Leave.EnforceOverlap,
		EnforceNotice:  cfg.Leave.EnforceNotice,
		PaidNoticeDays: cfg.Leave.PaidNoticeDays,
		SickNoticeDays: cfg.Leave.SickNoticeDays,
		MaxDays:        cfg.Leave.MaxRequestDays,
	})
	leaveSvc := leaveService.NewLeaveService(requestService, notifSvc, loc)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, notifSvc)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, attendanceRepo, leaveRequestRepo, employeeRepo, payrollRepo, loc)

	pages, err := web.NewPages(JWTService, authService, dashboardSvc, googleService != nil)
	if err != nil {
		return fmt.Errorf("load page templates: %w", err)
	}

	scheduler := cron.NewScheduler()
	if cfg.Reminder.Enabled {
		cron.NewAttendanceJobs(attendanceRepo, employeeRepo, leaveRequestRepo, notifSvc, loc, cfg.Reminder.Hour).
			RegisterJobs(scheduler, cfg.Reminder.Interval)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         logger,
			LogLevel:       logLevel,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		JWTService,
		appHTTP.Handlers{
			Auth:         appHTTP.NewAuthHandler(JWTService, authService, googleService, cfg.Session.CookieSecure),
			Employee:     appHTTP.NewEmployeeHandler(employeeSvc, dashboardSvc),
			Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
			Leave:        appHTTP.NewLeaveHandler(leaveSvc),
			Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
			Notification: appHTTP.NewNotificationHandler(notifSvc),
			Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
			Health:       appHTTP.NewHealthHandler(db, cfg.App.Version),
			Pages:        pages.Routes,
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// open notification streams end when a shutdown signal arrives
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
