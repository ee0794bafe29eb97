package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/notification"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create inserts n and fills in its id and creation time
func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO notifications (user_id, type, title, message, link, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING notification_id
	`
	err := q.QueryRowContext(ctx, query,
		n.UserID,
		string(n.Type),
		n.Title,
		n.Message,
		nullString(n.Link),
		n.IsRead,
		formatTimestamp(n.CreatedAt),
	).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// CreateBatch inserts notifications in a single transaction
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		for _, n := range notifications {
			if err := r.Create(txCtx, n); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByUserID returns one page of a user's notifications, newest first, and the total
func (r *notificationRepository) GetByUserID(ctx context.Context, userID int64, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	q := GetQuerier(ctx, r.db)

	offset := (page - 1) * pageSize

	whereClause := "user_id = ?"
	if unreadOnly {
		whereClause += " AND read = 0"
	}

	var total int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM notifications WHERE "+whereClause, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT notification_id, user_id, type, title, message, link, read, read_at, created_at
		FROM notifications
		WHERE ` + whereClause + `
		ORDER BY created_at DESC, notification_id DESC
		LIMIT ? OFFSET ?
	`
	rows, err := q.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []*notification.Notification{}
	for rows.Next() {
		var (
			n            notification.Notification
			notifType    string
			link, readAt sql.NullString
			createdAt    string
		)
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&notifType,
			&n.Title,
			&n.Message,
			&link,
			&n.IsRead,
			&readAt,
			&createdAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}

		n.Type = notification.NotificationType(notifType)
		n.Link = stringPtr(link)
		n.ReadAt = timestampPtr(readAt)
		n.CreatedAt = parseTimestamp(createdAt)
		notifications = append(notifications, &n)
	}

	return notifications, total, rows.Err()
}

// Exists reports whether the notification belongs to the user
func (r *notificationRepository) Exists(ctx context.Context, id, userID int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM notifications WHERE notification_id = ? AND user_id = ?)`,
		id, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check notification: %w", err)
	}
	return exists, nil
}

// GetUnreadCount returns the count of unread notifications for a user
func (r *notificationRepository) GetUnreadCount(ctx context.Context, userID int64) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read = 0`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkAsRead marks specific notifications as read
func (r *notificationRepository) MarkAsRead(ctx context.Context, ids []int64, userID int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, r.db)

	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+2)
	args = append(args, formatTimestamp(time.Now()), userID)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := `
		UPDATE notifications
		SET read = 1, read_at = ?
		WHERE user_id = ? AND read = 0 AND notification_id IN (` + strings.Join(placeholders, ", ") + `)
	`
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// MarkAllAsRead marks all notifications as read for a user
func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID int64) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.ExecContext(ctx, `
		UPDATE notifications
		SET read = 1, read_at = ?
		WHERE user_id = ? AND read = 0
	`, formatTimestamp(time.Now()), userID)
	if err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	return nil
}
