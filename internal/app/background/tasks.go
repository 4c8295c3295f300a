package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/pricetrust/pricing-service/internal/usecase"
)

type BackgroundTasks struct {
	PipelineUsecase usecase.PipelineUsecase
	Interval        time.Duration
	Logger          *slog.Logger
}

func NewBackgroundTasks(pipelineUC usecase.PipelineUsecase, interval time.Duration, logger *slog.Logger) *BackgroundTasks {
	return &BackgroundTasks{
		PipelineUsecase: pipelineUC,
		Interval:        interval,
		Logger:          logger,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startPipelineRuns(ctx)
}

// startPipelineRuns fires one run immediately, then one per interval.
// A failed run is logged and the schedule keeps going; the usecase
// itself guarantees runs never overlap.
func (bt *BackgroundTasks) startPipelineRuns(ctx context.Context) {
	ticker := time.NewTicker(bt.Interval)
	defer ticker.Stop()

	bt.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.runOnce(ctx)
		}
	}
}

func (bt *BackgroundTasks) runOnce(ctx context.Context) {
	run, err := bt.PipelineUsecase.Run(ctx)
	if err != nil {
		bt.Logger.Error("pipeline run aborted", "error", err)
		return
	}
	bt.Logger.Info("scheduled pipeline run finished", "run_id", run.ID, "status", run.Status)
}
