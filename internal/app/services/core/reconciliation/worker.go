package reconciliation

import (
	"context"
	"errors"

	"claimsync-service/internal/app/config"
	"claimsync-service/internal/app/contracts"
	"claimsync-service/internal/pkg/constvars"
	"claimsync-service/internal/pkg/exceptions"
	"claimsync-service/internal/pkg/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const fallbackCronSpec = "@hourly"

// Worker runs reconciliation on a cron schedule. The leader lock is taken
// by the usecase, so every instance may run a Worker.
type Worker struct {
	log     *zap.Logger
	cfg     *config.InternalConfig
	usecase contracts.ReconciliationUsecase
	stop    chan struct{}
	cron    *cron.Cron
	runCtx  context.Context
	cancel  context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, usecase contracts.ReconciliationUsecase) *Worker {
	return &Worker{log: log, cfg: cfg, usecase: usecase, stop: make(chan struct{})}
}

// Start schedules the periodic runs.
func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Reconciliation.CronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("reconciliation.worker: failed to schedule with provided cron spec; falling back to @hourly",
			zap.String("cron_spec", spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(fallbackCronSpec, func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop halts the schedule and waits for an in-flight run to return.
func (w *Worker) Stop() {
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	runCtx := context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, utils.GenerateRequestID(constvars.REQUEST_ID_PREFIX))
	if timeout := w.cfg.Reconciliation.RunTimeout; timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, timeout)
		defer cancel()
	}

	summary, err := w.usecase.RunOnce(runCtx)
	if errors.Is(err, exceptions.ReconciliationInProgress) {
		w.log.Info("reconciliation.worker: leader lock not acquired; another instance is running")
		return
	}
	if err != nil {
		w.log.Warn("reconciliation.worker: run aborted", zap.Error(err))
		return
	}
	w.log.Info("reconciliation.worker: run finished",
		zap.Int("files_downloaded", summary.FilesDownloaded),
		zap.Int("files_failed", summary.FilesFailed),
		zap.Int(constvars.LoggingClaimsUpdatedKey, summary.ClaimsUpdated),
	)
}
