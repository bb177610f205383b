package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/devicedesk-notifier/internal/notification"
	"github.com/shaharia-lab/devicedesk-notifier/internal/storage"
)

func newTestStore(t *testing.T) *storage.SQLiteNotificationStore {
	t.Helper()
	db, err := storage.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return storage.NewSQLiteNotificationStore(db)
}

func pendingNotification(t *testing.T, id, userID string) notification.Notification {
	t.Helper()
	n, err := notification.Create(notification.CreateParams{
		ID:            id,
		UserID:        userID,
		UserEmail:     "a@b.com",
		Type:          notification.TypeReservationCreated,
		Subject:       "DeviceDesk - Your reservation is confirmed",
		HTMLBody:      "<html>body</html>",
		TextBody:      "body",
		ReservationID: "R1",
	})
	require.NoError(t, err)
	return n
}

func TestSQLiteNotificationStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	n := pendingNotification(t, "n-1", "U1")
	saved, err := store.Save(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, n.ID, saved.ID)

	got, err := store.GetByID(ctx, "n-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, n.ID, got.ID)
	assert.Equal(t, n.UserID, got.UserID)
	assert.Equal(t, n.UserEmail, got.UserEmail)
	assert.Equal(t, n.Type, got.Type)
	assert.Equal(t, n.Subject, got.Subject)
	assert.Equal(t, n.HTMLBody, got.HTMLBody)
	assert.Equal(t, n.TextBody, got.TextBody)
	assert.Equal(t, n.Status, got.Status)
	assert.Equal(t, n.ReservationID, got.ReservationID)
	assert.Equal(t, n.RetryCount, got.RetryCount)
	assert.Nil(t, got.SentAt)
	assert.WithinDuration(t, n.CreatedAt, got.CreatedAt, time.Second)
	assert.WithinDuration(t, n.UpdatedAt, got.UpdatedAt, time.Second)
}

func TestSQLiteNotificationStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetByID(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteNotificationStore_UpsertByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	n := pendingNotification(t, "n-1", "U1")
	_, err := store.Save(ctx, n)
	require.NoError(t, err)

	sent, err := notification.MarkSent(n)
	require.NoError(t, err)
	persisted, err := store.Save(ctx, sent)
	require.NoError(t, err)
	assert.Equal(t, notification.StatusSent, persisted.Status)
	require.NotNil(t, persisted.SentAt)

	// Same id, one row: the second save overwrote the first.
	list, err := store.ListByUserID(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, notification.StatusSent, list[0].Status)
}

func TestSQLiteNotificationStore_Lists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := pendingNotification(t, "n-1", "U1")
	_, err := store.Save(ctx, first)
	require.NoError(t, err)

	second := pendingNotification(t, "n-2", "U2")
	failed, err := notification.MarkFailed(second, "SMTP down")
	require.NoError(t, err)
	_, err = store.Save(ctx, failed)
	require.NoError(t, err)

	t.Run("by user", func(t *testing.T) {
		list, err := store.ListByUserID(ctx, "U1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "n-1", list[0].ID)

		list, err = store.ListByUserID(ctx, "U3")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("by status", func(t *testing.T) {
		list, err := store.ListByStatus(ctx, notification.StatusFailed)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "n-2", list[0].ID)
		assert.Equal(t, "SMTP down", list[0].FailureReason)
		assert.Equal(t, 1, list[0].RetryCount)
	})

	t.Run("pending", func(t *testing.T) {
		list, err := store.ListPending(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "n-1", list[0].ID)
	})
}

func TestSQLiteNotificationStore_DeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	n := pendingNotification(t, "n-1", "U1")
	_, err := store.Save(ctx, n)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "n-1"))
	got, err := store.GetByID(ctx, "n-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting a missing id is not an error.
	require.NoError(t, store.Delete(ctx, "n-1"))
	require.NoError(t, store.Delete(ctx, "never-existed"))
}
