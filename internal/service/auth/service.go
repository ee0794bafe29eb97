package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/sqlite"
	"github.com/dayflow-hr/hrms-backend-go/internal/service/identity"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	jwt.Service
	allocator   *identity.Allocator
	companyName string
	loc         *time.Location
	now         func() time.Time
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, jwtService jwt.Service, allocator *identity.Allocator, companyName string, loc *time.Location) *AuthServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepository,
		Service:        jwtService,
		allocator:      allocator,
		companyName:    companyName,
		loc:            loc,
		now:            time.Now,
	}
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.SessionResponse{}, err
	}

	exists, err := a.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.SessionResponse{}, user.ErrUserEmailExists
	}

	if req.EmployeeID != nil {
		taken, err := a.UserRepository.ExistsByLoginID(ctx, *req.EmployeeID)
		if err != nil {
			return auth.SessionResponse{}, fmt.Errorf("failed to check employee id: %w", err)
		}
		if taken {
			return auth.SessionResponse{}, user.ErrLoginIDExists
		}
	}

	role, _ := user.ParseRole(req.UserType)
	today := a.today()

	passwordHash, err := a.allocator.HashPassword(req.Password)
	if err != nil {
		return auth.SessionResponse{}, err
	}

	newUser := user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Phone:        req.Phone,
		Role:         role,
		LoginID:      req.EmployeeID,
	}
	if role == user.RoleEmployee {
		newUser.JoiningDate = &today
	}

	var created user.User
	err = sqlite.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		if role == user.RoleEmployee && newUser.LoginID == nil {
			loginID, err := a.allocator.AllocateLoginID(txCtx, a.companyName, req.Name, today)
			if err != nil {
				return err
			}
			newUser.LoginID = &loginID
		}

		created, err = a.UserRepository.Create(txCtx, newUser)
		return err
	})
	if err != nil {
		return auth.SessionResponse{}, err
	}

	slog.Info("user registered", "user_id", created.ID, "role", created.Role)
	return a.issueSession(created)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.SessionResponse{}, err
	}

	var (
		userData user.User
		err      error
	)
	if req.Email != "" {
		userData, err = a.UserRepository.GetByEmail(ctx, req.Email)
	} else {
		userData, err = a.UserRepository.GetByLoginID(ctx, req.LoginID)
	}
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.SessionResponse{}, auth.ErrInvalidCredentials
		}
		return auth.SessionResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.SessionResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueSession(userData)
}

// LoginWithGoogle implements auth.AuthService. Only existing accounts may sign in this way.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email string) (auth.SessionResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.SessionResponse{}, auth.ErrAccountNotLinked
		}
		return auth.SessionResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return a.issueSession(userData)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context) error {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return err
	}
	a.Service.RevokeToken(principal.SessionID, principal.ExpiresAt)
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (user.UserResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	userData, err := a.UserRepository.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// account deleted while the session was alive
			return user.UserResponse{}, auth.ErrNotAuthenticated
		}
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(userData), nil
}

func (a *AuthServiceImpl) issueSession(u user.User) (auth.SessionResponse, error) {
	token, _, expiresAt, err := a.Service.GenerateSessionToken(u.ID, u.Role)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to create session token: %w", err)
	}
	return auth.SessionResponse{
		User:        user.NewUserResponse(u),
		RedirectURL: u.HomePath(),
		Token:       token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (a *AuthServiceImpl) today() time.Time {
	y, m, d := a.now().In(a.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
