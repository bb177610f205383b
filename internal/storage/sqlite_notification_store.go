package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shaharia-lab/devicedesk-notifier/internal/notification"
)

// SQLiteNotificationStore implements notification.Store backed by SQLite.
type SQLiteNotificationStore struct {
	db *sql.DB
}

// NewSQLiteNotificationStore returns a new SQLiteNotificationStore.
func NewSQLiteNotificationStore(db *sql.DB) *SQLiteNotificationStore {
	return &SQLiteNotificationStore{db: db}
}

const notificationColumns = `id, user_id, user_email, type, subject, html_body, text_body,
	status, reservation_id, failure_reason, retry_count, created_at, sent_at, updated_at`

// Save upserts the notification keyed by id and returns the persisted form.
func (s *SQLiteNotificationStore) Save(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	var sentAt sql.NullTime
	if n.SentAt != nil {
		sentAt = sql.NullTime{Time: n.SentAt.UTC(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status         = excluded.status,
			failure_reason = excluded.failure_reason,
			retry_count    = excluded.retry_count,
			sent_at        = excluded.sent_at,
			updated_at     = excluded.updated_at`,
		n.ID, n.UserID, n.UserEmail, string(n.Type), n.Subject, n.HTMLBody, n.TextBody,
		string(n.Status), n.ReservationID, n.FailureReason, n.RetryCount,
		n.CreatedAt.UTC(), sentAt, n.UpdatedAt.UTC(),
	)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("saving notification %s: %w", n.ID, err)
	}

	saved, err := s.GetByID(ctx, n.ID)
	if err != nil {
		return notification.Notification{}, err
	}
	return *saved, nil
}

// GetByID returns the notification with the given id, or (nil, nil) when no
// such record exists.
func (s *SQLiteNotificationStore) GetByID(ctx context.Context, id string) (*notification.Notification, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE id = ?`, id)

	n, err := scanNotification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting notification %s: %w", id, err)
	}
	return &n, nil
}

// ListByUserID returns all notifications for a user, newest first.
func (s *SQLiteNotificationStore) ListByUserID(ctx context.Context, userID string) ([]notification.Notification, error) {
	return s.list(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC`, userID)
}

// ListByStatus returns all notifications in the given status, newest first.
func (s *SQLiteNotificationStore) ListByStatus(ctx context.Context, status notification.Status) ([]notification.Notification, error) {
	return s.list(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE status = ?
		ORDER BY created_at DESC`, string(status))
}

// ListPending returns all notifications still in the pending state. An
// external retry mechanism reads these to find deliveries interrupted
// before reaching a terminal state.
func (s *SQLiteNotificationStore) ListPending(ctx context.Context) ([]notification.Notification, error) {
	return s.ListByStatus(ctx, notification.StatusPending)
}

// Delete removes a notification by id. Deleting a missing id is not an
// error.
func (s *SQLiteNotificationStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM notifications WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting notification %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteNotificationStore) list(ctx context.Context, query string, args ...any) ([]notification.Notification, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	var notifications []notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notification rows: %w", err)
	}
	return notifications, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanNotification.
type scanner interface {
	Scan(dest ...any) error
}

func scanNotification(sc scanner) (notification.Notification, error) {
	var (
		n      notification.Notification
		typ    string
		status string
		sentAt sql.NullTime
	)
	err := sc.Scan(&n.ID, &n.UserID, &n.UserEmail, &typ, &n.Subject, &n.HTMLBody, &n.TextBody,
		&status, &n.ReservationID, &n.FailureReason, &n.RetryCount, &n.CreatedAt, &sentAt, &n.UpdatedAt)
	if err != nil {
		return notification.Notification{}, err
	}
	n.Type = notification.Type(typ)
	n.Status = notification.Status(status)
	if sentAt.Valid {
		t := sentAt.Time.UTC()
		n.SentAt = &t
	}
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = n.UpdatedAt.UTC()
	return n, nil
}
