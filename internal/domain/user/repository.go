package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByLoginID(ctx context.Context, loginID string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByLoginID(ctx context.Context, loginID string) (bool, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
