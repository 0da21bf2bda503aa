package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SettlementBatchJobName labels the job in logs and metrics.
const SettlementBatchJobName = "settlement_batch"

// DefaultSettlementBatchSchedule runs every Monday at 06:00.
const DefaultSettlementBatchSchedule = "0 0 6 * * MON"

type unbatchedOrdersBatcher interface {
	Handle(ctx context.Context, cmd commands.BatchUnbatchedOrdersCommand) (commands.CreateSettlementResult, error)
}

// SettlementBatchJob periodically puts every billable unbatched order into one settlement.
// Double batching is already prevented by row locks in the batcher; the optional Locker
// only keeps idle instances from competing for them.
type SettlementBatchJob struct {
	handler  unbatchedOrdersBatcher
	schedule string
	runner   runner
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

// NewSettlementBatchJob creates the job. lock and metrics may be nil.
func NewSettlementBatchJob(
	handler unbatchedOrdersBatcher,
	schedule string,
	lock Locker,
	metrics Recorder,
	logger *slog.Logger,
) *SettlementBatchJob {
	if schedule == "" {
		schedule = DefaultSettlementBatchSchedule
	}
	logger = logger.With("component", "settlement_batch_job")
	return &SettlementBatchJob{
		handler:  handler,
		schedule: schedule,
		runner:   runner{name: SettlementBatchJobName, lock: lock, metrics: metrics, logger: logger},
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger,
		now:      time.Now,
	}
}

// Run performs one batching pass.
func (j *SettlementBatchJob) Run(ctx context.Context) error {
	_, err := j.runner.run(ctx, func(ctx context.Context) error {
		note := "Automatic batch " + j.now().UTC().Format("2006-01-02")
		result, err := j.handler.Handle(ctx, commands.NewBatchUnbatchedOrdersCommand(0, note))
		if err != nil {
			return err
		}

		if result.Settlement == nil {
			j.logger.InfoContext(ctx, "No unbatched orders to settle")
			return nil
		}
		j.logger.InfoContext(ctx, "Settlement created",
			"settlement_id", result.Settlement.ID().String(),
			"orders", len(result.Settlement.Links()),
			"total_cents", result.Settlement.TotalCents(),
			"skipped", len(result.Skipped),
		)
		return nil
	})
	return err
}

// Start schedules the job.
func (j *SettlementBatchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Settlement batch job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Settlement batch job started", "schedule", j.schedule)
	return nil
}

// Stop stops the settlement batch job.
func (j *SettlementBatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Settlement batch job stopped")
}
