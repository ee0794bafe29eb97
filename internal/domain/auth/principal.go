package auth

import (
	"context"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
)

// Principal is the verified identity behind a request.
type Principal struct {
	UserID    int64
	Role      user.Role
	SessionID string
	ExpiresAt time.Time
}

func (p Principal) IsEmployee() bool {
	return p.Role == user.RoleEmployee
}

// CanAccess reports whether the principal may touch rows owned by userID.
func (p Principal) CanAccess(userID int64) bool {
	return user.CanAccessUser(p.Role, p.UserID, userID)
}

type principalKey struct{}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored by NewContext.
func FromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || p.UserID == 0 {
		return Principal{}, ErrNotAuthenticated
	}
	return p, nil
}
