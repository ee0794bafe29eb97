package notification

import (
	"context"
)

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	// CreateBatch inserts all notifications in one transaction, all or nothing
	CreateBatch(ctx context.Context, notifications []*Notification) error
	GetByUserID(ctx context.Context, userID int64, page, pageSize int, unreadOnly bool) ([]*Notification, int, error)
	// Exists reports whether notification id belongs to userID
	Exists(ctx context.Context, id, userID int64) (bool, error)
	GetUnreadCount(ctx context.Context, userID int64) (int, error)
	// MarkAsRead only touches rows owned by userID and reports how many changed
	MarkAsRead(ctx context.Context, ids []int64, userID int64) (int, error)
	MarkAllAsRead(ctx context.Context, userID int64) error
}
