package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"apnadoctor/internal/models/db_models"
	"apnadoctor/internal/repositories"
	"apnadoctor/pkg/utils"
)

const (
	reminderSpec      = "* * * * *"
	weeklySummarySpec = "0 9 * * 1"
	dailyMedicineSpec = "0 8 * * *"

	jobTimeout = 50 * time.Second
)

// ---------- Reminder matcher ----------

// MatchReport counts what one matcher tick did.
type MatchReport struct {
	Clock    string
	Matched  int
	Notified int
	Emailed  int
	Texted   int
	Failures int
}

type ReminderMatcher struct {
	schedules     repositories.ScheduledNotificationRepository
	notifications repositories.NotificationRepository
	mailer        IMailService
	sms           ISMSService
	loc           *time.Location
	log           *zap.Logger
}

func NewReminderMatcher(
	schedules repositories.ScheduledNotificationRepository,
	notifications repositories.NotificationRepository,
	mailer IMailService,
	sms ISMSService,
	loc *time.Location,
	log *zap.Logger,
) *ReminderMatcher {
	if loc == nil {
		loc = time.Local
	}
	return &ReminderMatcher{
		schedules:     schedules,
		notifications: notifications,
		mailer:        mailer,
		sms:           sms,
		loc:           loc,
		log:           log.Named("reminders"),
	}
}

// RunAt delivers every active reminder whose time equals now's HH:MM in the matcher location.
func (m *ReminderMatcher) RunAt(ctx context.Context, now time.Time) (MatchReport, error) {
	report := MatchReport{Clock: utils.ClockString(now, m.loc)}

	due, err := m.schedules.FindDue(ctx, report.Clock)
	if err != nil {
		return report, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	report.Matched = len(due)

	for i := range due {
		m.deliver(ctx, &due[i], &report)
	}

	if report.Matched > 0 {
		m.log.Info("reminders processed",
			zap.String("clock", report.Clock),
			zap.Int("matched", report.Matched),
			zap.Int("failures", report.Failures))
	}
	return report, nil
}

func (m *ReminderMatcher) deliver(ctx context.Context, s *db_models.ScheduledNotification, report *MatchReport) {
	message := "Reminder: " + s.Label
	fields := []zap.Field{zap.String("schedule_id", s.ID.String()), zap.String("user_id", s.UserID.String())}

	err := m.notifications.Create(ctx, &db_models.Notification{
		UserID:  s.UserID,
		Title:   "Scheduled Reminder",
		Message: message,
		Type:    db_models.NotificationReminder,
	})
	if err != nil {
		report.Failures++
		m.log.Error("create reminder notification", append(fields, zap.Error(err))...)
	} else {
		report.Notified++
	}

	if s.HasChannel(db_models.ChannelEmail) {
		to := s.ReminderEmail
		if to == "" {
			to = s.User.Email
		}
		if to == "" {
			report.Failures++
			m.log.Warn("reminder has no email recipient", fields...)
		} else if err := m.mailer.SendReminder(to, s.User.FullName, s.Label, s.Time); err != nil {
			report.Failures++
			m.log.Error("send reminder email", append(fields, zap.Error(err))...)
		} else {
			report.Emailed++
		}
	}

	if s.HasChannel(db_models.ChannelSMS) && s.User.SMSNotifications && s.User.PhoneNumber != "" {
		if err := m.sms.SendSMS(ctx, s.User.PhoneNumber, message); err != nil {
			report.Failures++
			m.log.Error("send reminder sms", append(fields, zap.Error(err))...)
		} else {
			report.Texted++
		}
	}
}

// ---------- Broadcast jobs ----------

type BroadcastJobs struct {
	accounts      repositories.AccountRepository
	notifications repositories.NotificationRepository
	mailer        IMailService
	sms           ISMSService
	push          IPushService
	log           *zap.Logger
}

func NewBroadcastJobs(
	accounts repositories.AccountRepository,
	notifications repositories.NotificationRepository,
	mailer IMailService,
	sms ISMSService,
	push IPushService,
	log *zap.Logger,
) *BroadcastJobs {
	return &BroadcastJobs{
		accounts:      accounts,
		notifications: notifications,
		mailer:        mailer,
		sms:           sms,
		push:          push,
		log:           log.Named("broadcast"),
	}
}

const (
	weeklySummaryTitle   = "Weekly Health Summary"
	weeklySummaryMessage = "Your weekly health summary is ready. Check your dashboard for insights."
	medicineTitle        = "Medicine Reminder"
	medicineMessage      = "Don't forget to take your medicines today!"
)

// WeeklySummary notifies every account and emails those with email notifications on.
func (b *BroadcastJobs) WeeklySummary(ctx context.Context) error {
	accounts, err := b.accounts.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	for i := range accounts {
		a := &accounts[i]
		b.notify(ctx, a, weeklySummaryTitle, weeklySummaryMessage, db_models.NotificationInfo)

		if a.EmailNotifications {
			if err := b.mailer.SendNotification(a.Email, weeklySummaryTitle, weeklySummaryMessage); err != nil {
				b.log.Error("weekly summary email", zap.String("user_id", a.ID.String()), zap.Error(err))
			}
		}
	}
	b.log.Info("weekly summary sent", zap.Int("accounts", len(accounts)))
	return nil
}

// DailyMedicine notifies every account, then pushes and texts where the account opted in.
func (b *BroadcastJobs) DailyMedicine(ctx context.Context) error {
	accounts, err := b.accounts.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	for i := range accounts {
		a := &accounts[i]
		b.notify(ctx, a, medicineTitle, medicineMessage, db_models.NotificationAlert)

		if a.PushNotifications && a.FCMToken != "" {
			if err := b.push.SendPush(ctx, a.FCMToken, medicineTitle, medicineMessage); err != nil {
				b.log.Error("medicine push", zap.String("user_id", a.ID.String()), zap.Error(err))
			}
		}
		if a.SMSNotifications && a.PhoneNumber != "" {
			if err := b.sms.SendSMS(ctx, a.PhoneNumber, medicineMessage); err != nil {
				b.log.Error("medicine sms", zap.String("user_id", a.ID.String()), zap.Error(err))
			}
		}
	}
	b.log.Info("medicine reminders sent", zap.Int("accounts", len(accounts)))
	return nil
}

func (b *BroadcastJobs) notify(ctx context.Context, a *db_models.Account, title, message string, kind db_models.NotificationType) {
	err := b.notifications.Create(ctx, &db_models.Notification{
		UserID:  a.ID,
		Title:   title,
		Message: message,
		Type:    kind,
	})
	if err != nil {
		b.log.Error("create notification", zap.String("user_id", a.ID.String()), zap.Error(err))
	}
}

// ---------- Scheduler ----------

type Scheduler struct {
	cron      *cron.Cron
	matcher   *ReminderMatcher
	broadcast *BroadcastJobs
	now       func() time.Time
	log       *zap.Logger
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}

func NewScheduler(matcher *ReminderMatcher, broadcast *BroadcastJobs, loc *time.Location, log *zap.Logger) (*Scheduler, error) {
	log = log.Named("scheduler")
	logger := cronLogger{s: log.Sugar()}

	s := &Scheduler{
		cron:      cron.New(cron.WithLocation(loc), cron.WithLogger(logger), cron.WithChain(cron.Recover(logger))),
		matcher:   matcher,
		broadcast: broadcast,
		now:       time.Now,
		log:       log,
	}

	reminders := cron.NewChain(cron.SkipIfStillRunning(logger)).Then(cron.FuncJob(s.runReminders))
	if _, err := s.cron.AddJob(reminderSpec, reminders); err != nil {
		return nil, fmt.Errorf("schedule reminders: %w", err)
	}
	if _, err := s.cron.AddFunc(weeklySummarySpec, s.wrap("weekly summary", broadcast.WeeklySummary)); err != nil {
		return nil, fmt.Errorf("schedule weekly summary: %w", err)
	}
	if _, err := s.cron.AddFunc(dailyMedicineSpec, s.wrap("daily medicine", broadcast.DailyMedicine)); err != nil {
		return nil, fmt.Errorf("schedule daily medicine: %w", err)
	}
	return s, nil
}

func (s *Scheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.matcher.RunAt(ctx, s.now()); err != nil {
		s.log.Error("reminder tick failed", zap.Error(err))
	}
}

func (s *Scheduler) wrap(name string, job func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := job(ctx); err != nil {
			s.log.Error("job failed", zap.String("job", name), zap.Error(err))
		}
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started",
		zap.String("location", s.cron.Location().String()),
		zap.Int("jobs", len(s.cron.Entries())))
}

// Stop halts the cron loop and waits for running jobs.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
