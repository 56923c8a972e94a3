package job

import (
	"context"
	"log"
	"time"

	"metalcast/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type CycleRunner interface {
	RunCycle(ctx context.Context, now time.Time) (domain.CycleResult, error)
}

// StreamJob drives the orchestration loop, one cycle at a time. Cycle start
// times track the configured cadence: the sleep after each cycle is the
// interval minus the cycle's elapsed time, floored at one second.
type StreamJob struct {
	tracer   trace.Tracer
	runner   CycleRunner
	interval time.Duration
}

func NewStreamJob(tracer trace.Tracer, runner CycleRunner, interval time.Duration) *StreamJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &StreamJob{tracer: tracer, runner: runner, interval: interval}
}

func (j *StreamJob) Start(ctx context.Context) {
	if j.runner == nil {
		log.Println("Stream job disabled: no runner")
		<-ctx.Done()
		return
	}

	for {
		started := time.Now()
		j.runOnce(ctx)

		sleep := j.interval - time.Since(started)
		if sleep < time.Second {
			sleep = time.Second
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(sleep):
		}
	}
}

func (j *StreamJob) runOnce(ctx context.Context) {
	_, span := j.tracer.Start(ctx, "stream-job.run-once")
	defer span.End()

	// An in-flight cycle runs to completion on shutdown; the loop exits at
	// the next select. Per-provider timeouts bound how long that takes.
	result, err := j.runner.RunCycle(context.WithoutCancel(ctx), time.Now())
	if err != nil {
		log.Printf("Stream cycle error: %v", err)
		return
	}
	for _, warning := range result.Errors {
		log.Printf("Stream cycle warning: %s", warning)
	}
}
