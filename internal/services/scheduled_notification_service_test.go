package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apnadoctor/internal/models/db_models"
	"apnadoctor/internal/models/request_models"
	"apnadoctor/pkg/utils"
)

func TestNormalizeChannels(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []string
		wantErr error
	}{
		{"empty defaults to email", nil, []string{"email"}, nil},
		{"case and spaces", []string{" SMS ", "Email"}, []string{"sms", "email"}, nil},
		{"duplicates removed", []string{"email", "email", "sms"}, []string{"email", "sms"}, nil},
		{"unknown channel", []string{"email", "pigeon"}, nil, utils.ErrInvalidChannel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeChannels(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newScheduleFixture() (*fakeScheduleRepo, uuid.UUID, ScheduledNotificationServiceInterface) {
	account := db_models.Account{Email: "owner@example.com"}
	account.ID = uuid.New()
	repo := &fakeScheduleRepo{}
	return repo, account.ID, NewScheduledNotificationService(repo, &fakeAccountRepo{accounts: []db_models.Account{account}})
}

func TestScheduledNotificationService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		repo, userID, svc := newScheduleFixture()
		out, err := svc.Create(ctx, userID, request_models.CreateScheduleRequest{Label: " Blood pressure pill ", Time: "21:05"})
		require.NoError(t, err)

		assert.Equal(t, "Blood pressure pill", out.Label)
		assert.Equal(t, []string{"email"}, out.Channels)
		assert.Equal(t, "owner@example.com", out.ReminderEmail)
		assert.True(t, out.IsActive)
		require.Len(t, repo.items, 1)
		assert.Equal(t, userID, repo.items[0].UserID)
	})

	t.Run("explicit recipient kept", func(t *testing.T) {
		_, userID, svc := newScheduleFixture()
		out, err := svc.Create(ctx, userID, request_models.CreateScheduleRequest{Label: "x", Time: "06:00", ReminderEmail: "nurse@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "nurse@example.com", out.ReminderEmail)
	})

	t.Run("sms only has no recipient", func(t *testing.T) {
		_, userID, svc := newScheduleFixture()
		out, err := svc.Create(ctx, userID, request_models.CreateScheduleRequest{Label: "x", Time: "06:00", Channels: []string{"sms"}})
		require.NoError(t, err)
		assert.Empty(t, out.ReminderEmail)
	})

	for _, bad := range []string{"9:00", "24:00", "12:60", "noon", ""} {
		t.Run("rejects time "+bad, func(t *testing.T) {
			repo, userID, svc := newScheduleFixture()
			_, err := svc.Create(ctx, userID, request_models.CreateScheduleRequest{Label: "x", Time: bad})
			assert.ErrorIs(t, err, utils.ErrInvalidTime)
			assert.Empty(t, repo.items)
		})
	}
}

func TestScheduledNotificationService_UpdateToggleDelete(t *testing.T) {
	ctx := context.Background()
	repo, userID, svc := newScheduleFixture()

	created, err := svc.Create(ctx, userID, request_models.CreateScheduleRequest{Label: "Walk", Time: "07:00"})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	newTime := "07:30"
	channels := []string{"sms", "email"}
	updated, err := svc.Update(ctx, userID, id, request_models.UpdateScheduleRequest{Time: &newTime, Channels: &channels})
	require.NoError(t, err)
	assert.Equal(t, "07:30", updated.Time)
	assert.Equal(t, "Walk", updated.Label)
	assert.Equal(t, []string{"sms", "email"}, updated.Channels)

	badTime := "7:30"
	_, err = svc.Update(ctx, userID, id, request_models.UpdateScheduleRequest{Time: &badTime})
	assert.ErrorIs(t, err, utils.ErrInvalidTime)

	toggled, err := svc.Toggle(ctx, userID, id)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
	toggled, err = svc.Toggle(ctx, userID, id)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)

	stranger := uuid.New()
	_, err = svc.Toggle(ctx, stranger, id)
	assert.ErrorIs(t, err, utils.ErrScheduleNotFound)
	_, err = svc.Update(ctx, stranger, id, request_models.UpdateScheduleRequest{})
	assert.ErrorIs(t, err, utils.ErrScheduleNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, stranger, id), utils.ErrScheduleNotFound)

	require.NoError(t, svc.Delete(ctx, userID, id))
	assert.Empty(t, repo.items)
	assert.ErrorIs(t, svc.Delete(ctx, userID, id), utils.ErrScheduleNotFound)
}
