package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is one unit of queued work.
type Job struct {
	ID       string
	Type     string
	Payload  interface{}
	Attempt  int
	Enqueued time.Time
}

// Handler processes a job.
type Handler func(context.Context, Job) error

// Outcome is the final result of a job after its retries.
type Outcome struct {
	Job      Job
	Err      error
	Finished time.Time
}

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	// MaxRetries is the number of extra attempts after a failure.
	MaxRetries int
	RetryDelay time.Duration
	// Retryable decides whether a failure is worth another attempt. Nil
	// retries every failure.
	Retryable func(error) bool
	Logger    *zap.Logger
}

// Queue is an in-memory worker pool. Jobs are retried in the worker that
// picked them up, so Drain sees every job's final outcome.
type Queue struct {
	name    string
	handler Handler
	cfg     QueueConfig
	logger  *zap.Logger

	jobs   chan Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// sendMu is held shared by senders and exclusively when closing jobs.
	sendMu sync.RWMutex

	mu       sync.Mutex
	started  bool
	closed   bool
	outcomes []Outcome
}

// NewQueue builds a queue with the provided handler.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Queue{
		name:    name,
		handler: handler,
		cfg:     cfg,
		logger:  cfg.Logger.With(zap.String("queue", name)),
		jobs:    make(chan Job, cfg.BufferSize),
	}
}

// Start begins worker consumption. Safe to call once.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for range q.cfg.Workers {
		q.wg.Add(1)
		go q.worker()
	}
	q.started = true
	q.logger.Debug("queue started", zap.Int("workers", q.cfg.Workers))
}

// Enqueue pushes a job onto the queue, blocking while the buffer is full.
// It is safe to call concurrently with Drain.
func (q *Queue) Enqueue(job Job) error {
	q.sendMu.RLock()
	defer q.sendMu.RUnlock()

	q.mu.Lock()
	if !q.started || q.closed {
		q.mu.Unlock()
		return fmt.Errorf("queue %s is not accepting jobs", q.name)
	}
	ctx := q.ctx
	q.mu.Unlock()

	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("queue %s stopped: %w", q.name, ctx.Err())
	case q.jobs <- job:
		return nil
	}
}

// Drain stops accepting jobs, waits for the queued ones to finish and
// returns every outcome in completion order. Cancelling ctx stops the
// workers early.
func (q *Queue) Drain(ctx context.Context) []Outcome {
	q.sendMu.Lock()
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		q.sendMu.Unlock()
		return nil
	}
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()
	q.sendMu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		q.cancel()
		<-done
	}
	q.cancel()

	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Outcome, len(q.outcomes))
	copy(out, q.outcomes)
	return out
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case job, ok := <-q.jobs:
			if !ok {
				return
			}
			err := q.run(&job)
			q.mu.Lock()
			q.outcomes = append(q.outcomes, Outcome{Job: job, Err: err, Finished: time.Now().UTC()})
			q.mu.Unlock()
		}
	}
}

// run attempts job until it succeeds, fails permanently or runs out of
// retries.
func (q *Queue) run(job *Job) error {
	for {
		job.Attempt++
		err := q.handler(q.ctx, *job)
		if err == nil {
			return nil
		}
		if job.Attempt > q.cfg.MaxRetries || (q.cfg.Retryable != nil && !q.cfg.Retryable(err)) {
			q.logger.Warn("job failed", zap.String("job_id", job.ID), zap.String("type", job.Type), zap.Int("attempt", job.Attempt), zap.Error(err))
			return err
		}
		q.logger.Debug("job failed, retrying", zap.String("job_id", job.ID), zap.String("type", job.Type), zap.Int("attempt", job.Attempt), zap.Error(err))

		timer := time.NewTimer(q.cfg.RetryDelay)
		select {
		case <-q.ctx.Done():
			timer.Stop()
			return q.ctx.Err()
		case <-timer.C:
		}
	}
}
