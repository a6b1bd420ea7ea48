package reconcile

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultWriteDelay is the pause a job waits after taking a free slot.
const DefaultWriteDelay = 100 * time.Millisecond

// BatchWriter runs a fixed number of jobs with bounded concurrency. Each job after
// the first waits for a free slot and then pauses for the delay before it starts,
// so with concurrency 1 the delay separates one job's end from the next one's start.
// A failing job never stops the others.
type BatchWriter struct {
	concurrency int
	delay       time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewBatchWriter returns a writer running at most concurrency jobs at once.
// PRE: none; concurrency < 1 means 1 (sequential), delay < 0 means 0
func NewBatchWriter(concurrency int, delay time.Duration) *BatchWriter {
	if concurrency < 1 {
		concurrency = 1
	}
	if delay < 0 {
		delay = 0
	}
	return &BatchWriter{concurrency: concurrency, delay: delay, sleep: sleepContext}
}

// Run calls job(ctx, i) for i in [0, n) and returns one error slot per job.
// POST: len(result) == n; result[i] is job i's error, or ctx.Err() if it never started
func (b *BatchWriter) Run(ctx context.Context, n int, job func(ctx context.Context, i int) error) []error {
	errs := make([]error, n)
	slots := make(chan struct{}, b.concurrency)
	var g errgroup.Group

	for i := 0; i < n; i++ {
		if err := b.acquire(ctx, slots, i); err != nil {
			for j := i; j < n; j++ {
				errs[j] = err
			}
			break
		}
		g.Go(func() error {
			defer func() { <-slots }()
			errs[i] = job(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

// acquire takes a slot for job i, then sleeps the delay unless i is the first job.
// On error the slot is already released.
func (b *BatchWriter) acquire(ctx context.Context, slots chan struct{}, i int) error {
	select {
	case slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	if i > 0 && b.delay > 0 {
		if err := b.sleep(ctx, b.delay); err != nil {
			<-slots
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		<-slots
		return err
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
