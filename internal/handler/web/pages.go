// Package web serves the minimal server-rendered pages on top of the same services as
// the JSON API.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/dashboard"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templateFS embed.FS

type Pages struct {
	templates        *template.Template
	jwtService       jwt.Service
	authService      auth.AuthService
	dashboardService dashboard.DashboardService
	googleEnabled    bool
}

func NewPages(jwtService jwt.Service, authService auth.AuthService, dashboardService dashboard.DashboardService, googleEnabled bool) (*Pages, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	return &Pages{
		templates:        tmpl,
		jwtService:       jwtService,
		authService:      authService,
		dashboardService: dashboardService,
		googleEnabled:    googleEnabled,
	}, nil
}

// Routes registers the pages on r.
func (p *Pages) Routes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})
	r.Get("/login", p.LoginForm)
	r.Post("/login", p.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSessionPage(p.jwtService))
		r.Get("/logout", p.Logout)
		r.Get("/dashboard", p.Dashboard)
		r.With(middleware.RequireRolePage(user.PermissionDashboardAdmin)).Get("/admin", p.Admin)
	})
}

type pageData struct {
	Title     string
	Principal *auth.Principal
	CanAdmin  bool

	// login
	Error         string
	Identifier    string
	Redirect      string
	GoogleEnabled bool

	// dashboard
	Profile  *user.UserResponse
	Employee *dashboard.EmployeeDashboardResponse

	// admin
	Admin *dashboard.AdminDashboardResponse
}

func newPageData(r *http.Request, title string) pageData {
	data := pageData{Title: title}
	if principal, err := auth.FromContext(r.Context()); err == nil {
		data.Principal = &principal
		data.CanAdmin = user.CanViewAllRecords(principal.Role)
	}
	return data
}

// LoginForm handles GET /login
func (p *Pages) LoginForm(w http.ResponseWriter, r *http.Request) {
	data := newPageData(r, "Sign in")
	data.Redirect = safeRedirect(r.URL.Query().Get("redirect"))
	data.Error = loginErrorMessage(r.URL.Query().Get("error"))
	data.GoogleEnabled = p.googleEnabled
	p.render(w, http.StatusOK, "login.html", data)
}

// Login handles POST /login
func (p *Pages) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	identifier := strings.TrimSpace(r.PostFormValue("identifier"))
	req := auth.LoginRequest{Password: r.PostFormValue("password")}
	if strings.Contains(identifier, "@") {
		req.Email = identifier
	} else {
		req.LoginID = identifier
	}

	session, err := p.authService.Login(r.Context(), req)
	if err != nil {
		data := newPageData(r, "Sign in")
		data.Identifier = identifier
		data.Redirect = safeRedirect(r.PostFormValue("redirect"))
		data.GoogleEnabled = p.googleEnabled
		data.Error = "Invalid credentials"

		status := http.StatusUnauthorized
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			var validationErr interface{ Summary() string }
			if errors.As(err, &validationErr) {
				data.Error = validationErr.Summary()
				status = http.StatusBadRequest
			} else {
				slog.Error("Page login error", "error", err)
				data.Error = "Something went wrong, please try again"
				status = http.StatusInternalServerError
			}
		}
		p.render(w, status, "login.html", data)
		return
	}

	http.SetCookie(w, p.jwtService.SessionCookie(session.Token, session.ExpiresAt))

	target := safeRedirect(r.PostFormValue("redirect"))
	if target == "" {
		target = session.RedirectURL
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Logout handles GET /logout
func (p *Pages) Logout(w http.ResponseWriter, r *http.Request) {
	if err := p.authService.Logout(r.Context()); err != nil {
		slog.Warn("Page logout error", "error", err)
	}
	http.SetCookie(w, p.jwtService.ClearCookie())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Dashboard handles GET /dashboard
func (p *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := newPageData(r, "Dashboard")

	profile, err := p.authService.Me(r.Context())
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		p.fail(w, err)
		return
	}
	data.Profile = &profile

	if profile.UserType == user.RoleEmployee {
		summary, err := p.dashboardService.GetEmployeeDashboard(r.Context())
		if err != nil {
			p.fail(w, err)
			return
		}
		data.Employee = summary
	}

	p.render(w, http.StatusOK, "dashboard.html", data)
}

// Admin handles GET /admin
func (p *Pages) Admin(w http.ResponseWriter, r *http.Request) {
	data := newPageData(r, "Today")

	board, err := p.dashboardService.GetAdminDashboard(r.Context())
	if err != nil {
		p.fail(w, err)
		return
	}
	data.Admin = board

	p.render(w, http.StatusOK, "admin.html", data)
}

func (p *Pages) render(w http.ResponseWriter, status int, name string, data pageData) {
	var body bytes.Buffer
	if err := p.templates.ExecuteTemplate(&body, name, data); err != nil {
		p.fail(w, fmt.Errorf("failed to execute template %s: %w", name, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = body.WriteTo(w)
}

func (p *Pages) fail(w http.ResponseWriter, err error) {
	slog.Error("Page render error", "error", err)
	http.Error(w, "Something went wrong", http.StatusInternalServerError)
}

// safeRedirect keeps redirects on this site.
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return ""
	}
	return target
}

func loginErrorMessage(code string) string {
	switch code {
	case "":
		return ""
	case "account_not_found":
		return "No account is registered for that Google email."
	case "access_denied":
		return "Google sign-in was cancelled."
	default:
		return "Google sign-in failed, please try again."
	}
}
