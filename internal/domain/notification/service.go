package notification

import (
	"context"
)

// Service defines the notification service interface
type Service interface {
	// Notify stores a notification and pushes it to live subscribers
	Notify(ctx context.Context, req CreateNotificationRequest) error

	GetNotifications(ctx context.Context, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context) (int, error)
	MarkAsRead(ctx context.Context, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context) error

	// Subscribe streams new notifications of the authenticated user until cancel is called
	Subscribe(ctx context.Context) (<-chan SSEEvent, func(), error)
}
