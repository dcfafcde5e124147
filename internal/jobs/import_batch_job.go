package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"vendorportal/internal/core/application/usecases/commands"
	"vendorportal/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

type batchProcessor interface {
	Handle(ctx context.Context, cmd commands.ProcessImportBatchesCommand) error
}

// ImportBatchJob polls for Pending import batches and works through at most
// limit of them per tick. A tick that is still running when the next one is
// due is skipped, so one batch is never processed by two ticks at once.
type ImportBatchJob struct {
	handler  batchProcessor
	interval time.Duration
	limit    int
	cron     *cron.Cron
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewImportBatchJob creates the poller. It does nothing until Start.
func NewImportBatchJob(handler batchProcessor, interval time.Duration, limit int, logger *slog.Logger) *ImportBatchJob {
	ctx, cancel := context.WithCancel(context.Background())
	return &ImportBatchJob{
		handler:  handler,
		interval: interval,
		limit:    limit,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "import_batch_job"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start schedules the poller every interval.
func (j *ImportBatchJob) Start() error {
	if j.interval < time.Second {
		return errs.NewValueIsOutOfRangeError("interval", j.interval, time.Second, "unbounded")
	}

	cmd, err := commands.NewProcessImportBatchesCommand(j.limit)
	if err != nil {
		return err
	}

	_, err = j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		if err := j.handler.Handle(j.ctx, cmd); err != nil && !errors.Is(err, context.Canceled) {
			j.logger.ErrorContext(j.ctx, "Import batch job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(j.ctx, "Import batch job started", "interval", j.interval.String(), "limit", j.limit)
	return nil
}

// Stop cancels a running tick, which ends after its current record, and
// waits for it to return.
func (j *ImportBatchJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.logger.Info("Import batch job stopped")
}
