package jobs

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// NotificationDispatchJobName labels the job in logs and metrics.
const NotificationDispatchJobName = "notification_dispatch"

// DefaultNotificationDispatchSchedule runs every 30 seconds.
const DefaultNotificationDispatchSchedule = "*/30 * * * * *"

type notificationDispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchNotificationsCommand) (commands.DispatchReport, error)
}

// NotificationDispatchJob drains the notification outbox. Entries the post-commit flush
// could not deliver are retried here with backoff.
type NotificationDispatchJob struct {
	handler   notificationDispatcher
	schedule  string
	batchSize int
	runner    runner
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewNotificationDispatchJob creates the job. metrics may be nil.
func NewNotificationDispatchJob(
	handler notificationDispatcher,
	schedule string,
	batchSize int,
	metrics Recorder,
	logger *slog.Logger,
) *NotificationDispatchJob {
	if schedule == "" {
		schedule = DefaultNotificationDispatchSchedule
	}
	logger = logger.With("component", "notification_dispatch_job")
	return &NotificationDispatchJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		runner:    runner{name: NotificationDispatchJobName, metrics: metrics, logger: logger},
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger,
	}
}

// Run claims and sends one batch of due notifications. Delivery failures are
// rescheduled by the handler and only logged here.
func (j *NotificationDispatchJob) Run(ctx context.Context) error {
	_, err := j.runner.run(ctx, func(ctx context.Context) error {
		report, err := j.handler.Handle(ctx, commands.NewDispatchNotificationsCommand(j.batchSize))
		if err != nil && !errors.Is(err, errs.ErrNotificationDelivery) {
			return err
		}

		if report.Sent+report.Retried+report.Failed > 0 {
			j.logger.InfoContext(ctx, "Notifications dispatched",
				"sent", report.Sent, "retried", report.Retried, "failed", report.Failed)
		}
		if err != nil {
			j.logger.WarnContext(ctx, "Some notifications were not delivered", "error", err)
		}
		return nil
	})
	return err
}

// Start schedules the job.
func (j *NotificationDispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Notification dispatch job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification dispatch job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running dispatch to finish.
func (j *NotificationDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}
