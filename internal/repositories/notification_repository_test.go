package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apnadoctor/internal/models/db_models"
)

func TestNotificationRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewNotificationRepository(db)
	owner := seedAccount(t, db, "owner@example.com")
	other := seedAccount(t, db, "other@example.com")

	for i, title := range []string{"first", "second", "third"} {
		n := &db_models.Notification{UserID: owner.ID, Title: title, Message: "m", Type: db_models.NotificationInfo}
		n.CreatedAt = int64(1000 + i)
		require.NoError(t, repo.Create(ctx, n))
	}
	foreign := &db_models.Notification{UserID: other.ID, Title: "theirs", Message: "m", Type: db_models.NotificationAlert}
	require.NoError(t, repo.Create(ctx, foreign))

	items, err := repo.ListRecent(ctx, owner.ID, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "third", items[0].Title)
	assert.Equal(t, "second", items[1].Title)

	ok, err := repo.MarkRead(ctx, foreign.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, ok, "cannot mark another user's notification")

	ok, err = repo.MarkRead(ctx, items[0].ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	updated, err := repo.MarkAllRead(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	deleted, err := repo.DeleteAll(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	remaining, err := repo.ListRecent(ctx, other.ID, 20)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.False(t, remaining[0].IsRead)
}
