// Package historysync applies streams of reconcile batches to the local
// history. It is the caller-side worker that owns the retry policy, so the
// history store itself never retries.
package historysync

import (
	"context"
	"errors"
	"sync"

	"github.com/gabapcia/localhistory/internal/localhistory"
	"github.com/gabapcia/localhistory/internal/pkg/logger"
	"github.com/gabapcia/localhistory/internal/pkg/resilience/retry"
	"github.com/gabapcia/localhistory/internal/pkg/validator"
	"github.com/gabapcia/localhistory/internal/pkg/x/chflow"
)

// ErrServiceAlreadyStarted is returned if Start is called more than once.
var ErrServiceAlreadyStarted = errors.New("service already started")

// Reconciler applies reconcile batches. localhistory.Service satisfies it.
type Reconciler interface {
	BatchReconcile(ctx context.Context, reqs []localhistory.ReconcileRequest) error
}

// Result reports the outcome of one batch.
type Result struct {
	Seq      int   // position of the batch in the input stream, starting at 0
	Requests int   // number of requests in the batch
	Err      error // nil when the batch was applied
}

// Service consumes batches from a channel and applies them in order.
type Service interface {
	// Start launches the apply loop over batches. The returned channel gets one
	// Result per batch and is closed once batches is closed or ctx is done.
	//
	// Returns ErrServiceAlreadyStarted if Start is called more than once.
	Start(ctx context.Context, batches <-chan []localhistory.ReconcileRequest) (<-chan Result, error)

	// Close stops the apply loop and waits for it to return. It is safe to
	// call Close even if the service was never started.
	Close()
}

type closeFunc func()

type service struct {
	mu        sync.Mutex
	isStarted bool
	closeFunc closeFunc

	reconciler Reconciler
	retry      retry.Retry
}

var _ Service = new(service)

// IsRetriable reports whether applying a batch again could succeed. Invalid
// input and cancellation are permanent.
func IsRetriable(err error) bool {
	switch {
	case errors.Is(err, localhistory.ErrMissingIdentifier),
		errors.Is(err, localhistory.ErrInvalidStatus),
		errors.Is(err, validator.ErrValidationFailed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		return true
	}
}

// Start implements Service.
func (s *service) Start(ctx context.Context, batches <-chan []localhistory.ReconcileRequest) (<-chan Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return nil, ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	results := make(chan Result)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(results)

		s.applyBatches(ctx, batches, results)
	}()

	s.closeFunc = func() {
		cancel()
		wg.Wait()
	}
	s.isStarted = true

	return results, nil
}

// Close implements Service.
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}

	s.closeFunc = nil
	s.isStarted = false
}

// applyBatches reconciles every received batch and publishes its Result.
func (s *service) applyBatches(ctx context.Context, batches <-chan []localhistory.ReconcileRequest, results chan<- Result) {
	for seq := 0; ; seq++ {
		batch, ok := chflow.Receive(ctx, batches)
		if !ok {
			return
		}

		err := s.retry.Execute(ctx, func() error {
			return s.reconciler.BatchReconcile(ctx, batch)
		})
		if err != nil {
			logger.Error(ctx, "error applying reconcile batch",
				"batch.seq", seq,
				"batch.requests", len(batch),
				"error", err,
			)
		}

		if !chflow.Send(ctx, results, Result{Seq: seq, Requests: len(batch), Err: err}) {
			return
		}
	}
}

// New creates the sync service. opts tune the retry policy; only errors
// accepted by IsRetriable are retried.
func New(r Reconciler, opts ...retry.Option) *service {
	retryOpts := append([]retry.Option{
		retry.WithName("batch_reconcile"),
		retry.WithRetryIf(IsRetriable),
	}, opts...)

	return &service{
		reconciler: r,
		retry:      retry.New(retryOpts...),
	}
}
