package scheduler_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"apnadoctor/internal/config"
	"apnadoctor/internal/repositories"
	"apnadoctor/internal/services"
)

var Module = fx.Options(
	fx.Provide(provideReminderMatcher, services.NewBroadcastJobs, provideScheduler),
	fx.Invoke(registerScheduler),
)

func provideReminderMatcher(
	cfg config.Config,
	schedules repositories.ScheduledNotificationRepository,
	notifications repositories.NotificationRepository,
	mailer services.IMailService,
	sms services.ISMSService,
	log *zap.Logger,
) (*services.ReminderMatcher, error) {
	loc, err := cfg.SchedulerLocation()
	if err != nil {
		return nil, err
	}
	return services.NewReminderMatcher(schedules, notifications, mailer, sms, loc, log), nil
}

func provideScheduler(
	cfg config.Config,
	matcher *services.ReminderMatcher,
	broadcast *services.BroadcastJobs,
	log *zap.Logger,
) (*services.Scheduler, error) {
	loc, err := cfg.SchedulerLocation()
	if err != nil {
		return nil, err
	}
	return services.NewScheduler(matcher, broadcast, loc, log)
}

func registerScheduler(lc fx.Lifecycle, s *services.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}
