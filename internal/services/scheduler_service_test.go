package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"apnadoctor/internal/models/db_models"
)

type matcherFixture struct {
	schedules     *fakeScheduleRepo
	notifications *fakeNotificationRepo
	mailer        *fakeMailer
	sms           *fakeSMS
	matcher       *ReminderMatcher
}

func newMatcherFixture(items ...db_models.ScheduledNotification) *matcherFixture {
	f := &matcherFixture{
		schedules:     &fakeScheduleRepo{items: items},
		notifications: &fakeNotificationRepo{},
		mailer:        &fakeMailer{},
		sms:           &fakeSMS{},
	}
	f.matcher = NewReminderMatcher(f.schedules, f.notifications, f.mailer, f.sms, time.UTC, zap.NewNop())
	return f
}

func reminder(clock string, channels ...string) db_models.ScheduledNotification {
	userID := uuid.New()
	s := db_models.ScheduledNotification{
		UserID:   userID,
		Label:    "Take vitamin D",
		Time:     clock,
		Channels: pq.StringArray(channels),
		IsActive: true,
		User: db_models.Account{
			FullName: "Asha Rao",
			Email:    "asha@example.com",
		},
	}
	s.ID = uuid.New()
	s.User.ID = userID
	return s
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 5, 10, hour, minute, 27, 0, time.UTC)
}

func TestReminderMatcher_ExactMinuteOnly(t *testing.T) {
	f := newMatcherFixture(reminder("08:30", db_models.ChannelEmail), reminder("08:31", db_models.ChannelEmail))

	report, err := f.matcher.RunAt(context.Background(), at(8, 30))
	require.NoError(t, err)

	assert.Equal(t, "08:30", report.Clock)
	assert.Equal(t, 1, report.Matched)
	require.Len(t, f.notifications.created, 1)
	n := f.notifications.created[0]
	assert.Equal(t, "Scheduled Reminder", n.Title)
	assert.Equal(t, "Reminder: Take vitamin D", n.Message)
	assert.Equal(t, db_models.NotificationReminder, n.Type)

	report, err = f.matcher.RunAt(context.Background(), at(8, 32))
	require.NoError(t, err)
	assert.Zero(t, report.Matched)
}

func TestReminderMatcher_Midnight(t *testing.T) {
	f := newMatcherFixture(reminder("00:00", db_models.ChannelEmail))

	report, err := f.matcher.RunAt(context.Background(), at(0, 0))
	require.NoError(t, err)
	assert.Equal(t, "00:00", report.Clock)
	assert.Equal(t, 1, report.Matched)
}

func TestReminderMatcher_UsesConfiguredLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	f := newMatcherFixture(reminder("09:00", db_models.ChannelEmail))
	f.matcher = NewReminderMatcher(f.schedules, f.notifications, f.mailer, f.sms, ist, zap.NewNop())

	report, err := f.matcher.RunAt(context.Background(), at(3, 30))
	require.NoError(t, err)
	assert.Equal(t, "09:00", report.Clock)
	assert.Equal(t, 1, report.Matched)
}

func TestReminderMatcher_InactiveNeverFires(t *testing.T) {
	r := reminder("07:15", db_models.ChannelEmail, db_models.ChannelSMS)
	r.IsActive = false
	f := newMatcherFixture(r)

	report, err := f.matcher.RunAt(context.Background(), at(7, 15))
	require.NoError(t, err)
	assert.Zero(t, report.Matched)
	assert.Empty(t, f.notifications.created)
	assert.Empty(t, f.mailer.sent)
}

func TestReminderMatcher_EmailRecipient(t *testing.T) {
	explicit := reminder("10:00", db_models.ChannelEmail)
	explicit.ReminderEmail = "caregiver@example.com"
	fallback := reminder("10:00", db_models.ChannelEmail)
	smsOnly := reminder("10:00", db_models.ChannelSMS)

	f := newMatcherFixture(explicit, fallback, smsOnly)
	report, err := f.matcher.RunAt(context.Background(), at(10, 0))
	require.NoError(t, err)

	assert.Equal(t, 3, report.Notified)
	assert.Equal(t, 2, report.Emailed)
	require.Len(t, f.mailer.sent, 2)
	assert.Equal(t, "caregiver@example.com", f.mailer.sent[0].To)
	assert.Equal(t, "asha@example.com", f.mailer.sent[1].To)
	assert.Equal(t, "10:00", f.mailer.sent[1].Clock)
}

func TestReminderMatcher_SMSConditions(t *testing.T) {
	tests := []struct {
		name      string
		optedIn   bool
		phone     string
		channels  []string
		wantTexts int
	}{
		{"opted in with phone", true, "+919800000000", []string{db_models.ChannelSMS}, 1},
		{"not opted in", false, "+919800000000", []string{db_models.ChannelSMS}, 0},
		{"no phone", true, "", []string{db_models.ChannelSMS}, 0},
		{"sms channel off", true, "+919800000000", []string{db_models.ChannelEmail}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := reminder("18:45", tt.channels...)
			r.User.SMSNotifications = tt.optedIn
			r.User.PhoneNumber = tt.phone
			f := newMatcherFixture(r)

			_, err := f.matcher.RunAt(context.Background(), at(18, 45))
			require.NoError(t, err)
			assert.Len(t, f.sms.sent, tt.wantTexts)
			if tt.wantTexts > 0 {
				assert.Equal(t, "Reminder: Take vitamin D", f.sms.sent[0].Body)
			}
		})
	}
}

func TestReminderMatcher_FailuresDoNotStopProcessing(t *testing.T) {
	first := reminder("12:00", db_models.ChannelEmail, db_models.ChannelSMS)
	first.ReminderEmail = "broken@example.com"
	first.User.SMSNotifications = true
	first.User.PhoneNumber = "+911111111111"
	second := reminder("12:00", db_models.ChannelEmail)
	second.ReminderEmail = "ok@example.com"

	f := newMatcherFixture(first, second)
	f.mailer.failFor = map[string]bool{"broken@example.com": true}
	f.notifications.failFor = map[uuid.UUID]bool{second.UserID: true}

	report, err := f.matcher.RunAt(context.Background(), at(12, 0))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Matched)
	assert.Equal(t, 2, report.Failures)
	assert.Equal(t, 1, report.Notified)
	assert.Equal(t, 1, report.Emailed, "second reminder still emailed after its notification insert failed")
	assert.Equal(t, 1, report.Texted, "sms still sent after the email failed")
}

func TestReminderMatcher_LookupError(t *testing.T) {
	f := newMatcherFixture()
	f.schedules.findErr = errFake

	_, err := f.matcher.RunAt(context.Background(), at(9, 0))
	assert.Error(t, err)
}

func TestBroadcastJobs(t *testing.T) {
	emailUser := db_models.Account{Email: "a@example.com", EmailNotifications: true}
	emailUser.ID = uuid.New()
	pushUser := db_models.Account{Email: "b@example.com", PushNotifications: true, FCMToken: "tok-1"}
	pushUser.ID = uuid.New()
	smsUser := db_models.Account{Email: "c@example.com", SMSNotifications: true, PhoneNumber: "+912222222222"}
	smsUser.ID = uuid.New()
	quiet := db_models.Account{Email: "d@example.com", PushNotifications: true}
	quiet.ID = uuid.New()

	accounts := &fakeAccountRepo{accounts: []db_models.Account{emailUser, pushUser, smsUser, quiet}}
	notifications := &fakeNotificationRepo{failFor: map[uuid.UUID]bool{emailUser.ID: true}}
	mailer := &fakeMailer{}
	sms := &fakeSMS{}
	push := &fakePush{}
	jobs := NewBroadcastJobs(accounts, notifications, mailer, sms, push, zap.NewNop())

	t.Run("weekly summary", func(t *testing.T) {
		require.NoError(t, jobs.WeeklySummary(context.Background()))
		assert.Len(t, notifications.created, 3, "failed insert for one account is skipped")
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "a@example.com", mailer.sent[0].To)
		assert.Equal(t, weeklySummaryTitle, mailer.sent[0].Subject)
	})

	t.Run("daily medicine", func(t *testing.T) {
		notifications.created = nil
		require.NoError(t, jobs.DailyMedicine(context.Background()))

		assert.Len(t, notifications.created, 3)
		for _, n := range notifications.created {
			assert.Equal(t, db_models.NotificationAlert, n.Type)
			assert.Equal(t, medicineTitle, n.Title)
		}
		assert.Equal(t, []string{"tok-1"}, push.tokens)
		require.Len(t, sms.sent, 1)
		assert.Equal(t, "+912222222222", sms.sent[0].To)
	})
}

func TestNewScheduler_RegistersJobs(t *testing.T) {
	f := newMatcherFixture()
	jobs := NewBroadcastJobs(&fakeAccountRepo{}, f.notifications, f.mailer, f.sms, &fakePush{}, zap.NewNop())

	s, err := NewScheduler(f.matcher, jobs, time.UTC, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 3)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
