package auth

import (
	"context"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (SessionResponse, error)
	Login(ctx context.Context, req LoginRequest) (SessionResponse, error)
	LoginWithGoogle(ctx context.Context, email string) (SessionResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (user.UserResponse, error)
}
