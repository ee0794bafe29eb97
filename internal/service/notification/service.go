package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/notification"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/sse"
)

const eventNotification = "notification"

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 50
	FlushInterval time.Duration // default: 1 second
	WorkerCount   int           // default: 1
	QueueSize     int           // default: 256
}

type Service struct {
	repo   notification.Repository
	hub    *sse.Hub
	config Config

	queue    chan notification.CreateNotificationRequest
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewNotificationService creates a notification service and starts its background writers.
// Call Stop to flush pending notifications.
func NewNotificationService(repo notification.Repository, hub *sse.Hub, cfg Config) *Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 50
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 1
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}

	s := &Service{
		repo:   repo,
		hub:    hub,
		config: cfg,
		queue:  make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started",
		"workers", cfg.WorkerCount, "batch_size", cfg.BatchSize, "flush_interval", cfg.FlushInterval)

	return s
}

func (s *Service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateNotificationRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		notifications := make([]*notification.Notification, len(batch))
		for i, req := range batch {
			notifications[i] = newNotification(req)
		}

		stored := notifications
		if err := s.repo.CreateBatch(ctx, notifications); err != nil {
			slog.Warn("batch insert failed, inserting notifications one by one", "worker", id, "count", len(notifications), "error", err)
			stored = s.insertEach(ctx, id, notifications)
		}
		slog.Debug("inserted notifications", "worker", id, "count", len(stored))
		for _, n := range stored {
			s.publish(n)
		}

		batch = batch[:0]
	}

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// drain whatever was queued before Stop
			for {
				select {
				case req := <-s.queue:
					batch = append(batch, req)
				default:
					flush()
					return
				}
			}
		}
	}
}

// insertEach stores notifications individually so that one bad row, such as one whose
// user was deleted after queueing, does not drop the rest. It returns the stored rows.
func (s *Service) insertEach(ctx context.Context, worker int, notifications []*notification.Notification) []*notification.Notification {
	stored := make([]*notification.Notification, 0, len(notifications))
	for _, n := range notifications {
		n.ID = 0
		if err := s.repo.Create(ctx, n); err != nil {
			slog.Error("failed to insert notification", "worker", worker, "user_id", n.UserID, "type", n.Type, "error", err)
			continue
		}
		stored = append(stored, n)
	}
	return stored
}

// Notify queues a notification for asynchronous storage and delivery. When the queue is
// full it is written synchronously instead.
func (s *Service) Notify(ctx context.Context, req notification.CreateNotificationRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	select {
	case s.queue <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return s.directInsert(ctx, req)
	}
}

func (s *Service) directInsert(ctx context.Context, req notification.CreateNotificationRequest) error {
	n := newNotification(req)
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	s.publish(n)
	return nil
}

func (s *Service) publish(n *notification.Notification) {
	s.hub.Publish(sse.Event{
		UserID: n.UserID,
		Event:  eventNotification,
		Data:   notification.NewNotificationResponse(n),
	})
}

func newNotification(req notification.CreateNotificationRequest) *notification.Notification {
	return &notification.Notification{
		UserID:    req.UserID,
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		Link:      req.Link,
		CreatedAt: time.Now().UTC(),
	}
}

// GetNotifications retrieves paginated notifications for the current user
func (s *Service) GetNotifications(ctx context.Context, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	notifications, total, err := s.repo.GetByUserID(ctx, principal.UserID, page, pageSize, unreadOnly)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.repo.GetUnreadCount(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = notification.NewNotificationResponse(n)
	}

	return &notification.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unreadCount,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// GetUnreadCount returns the count of unread notifications
func (s *Service) GetUnreadCount(ctx context.Context) (int, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return 0, err
	}
	return s.repo.GetUnreadCount(ctx, principal.UserID)
}

// MarkAsRead marks the given notifications of the current user as read. Ids owned by
// someone else are reported as not found.
func (s *Service) MarkAsRead(ctx context.Context, req notification.MarkAsReadRequest) error {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	n, err := s.repo.MarkAsRead(ctx, req.NotificationIDs, principal.UserID)
	if err != nil {
		return err
	}
	if n == 0 && len(req.NotificationIDs) == 1 {
		exists, err := s.repo.Exists(ctx, req.NotificationIDs[0], principal.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return notification.ErrNotificationNotFound
		}
	}
	return nil
}

// MarkAllAsRead marks all notifications as read for the current user
func (s *Service) MarkAllAsRead(ctx context.Context) error {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return err
	}
	return s.repo.MarkAllAsRead(ctx, principal.UserID)
}

// Subscribe creates an SSE subscription for the current user
func (s *Service) Subscribe(ctx context.Context) (<-chan notification.SSEEvent, func(), error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return nil, nil, err
	}

	ch, cleanup := s.hub.Subscribe(principal.UserID)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if resp, ok := event.Data.(notification.NotificationResponse); ok {
					select {
					case out <- notification.SSEEvent{Event: event.Event, Data: resp}:
					case <-ctx.Done():
						return
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup, nil
}

// Stop flushes queued notifications and stops the workers. Safe to call twice.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("notification service stopped")
	})
}
