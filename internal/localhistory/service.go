// Package localhistory keeps the per-account transaction history of a wallet:
// locally submitted pending transactions and settled (confirmed) ones, merged
// and reconciled as confirmations arrive from indexers or from the chain.
//
// The whole history is one document persisted through a BlobStorage. Every
// mutation is a read-compute-write unit serialized by the service, so
// concurrent callers never overwrite each other's updates.
package localhistory

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName scopes the spans and metrics emitted by this package.
const instrumentationName = "github.com/gabapcia/localhistory/internal/localhistory"

// Service is the history store used by transaction submission, fee and nonce
// planning, history views and sync workers.
type Service interface {
	// GetByID looks up a record by history id, pending list first.
	// Returns ErrTxNotFound when the account has no such record.
	GetByID(ctx context.Context, id AccountIdentifier, historyID string) (HistoryTx, error)

	// SavePending merges freshly submitted transactions into the pending list.
	SavePending(ctx context.Context, id AccountIdentifier, txs []HistoryTx) error

	// SaveConfirmed merges settled transactions into the confirmed list.
	SaveConfirmed(ctx context.Context, id AccountIdentifier, txs []HistoryTx) error

	// UpdateConfirmedStatus changes the status of the confirmed record whose
	// transaction hash is txid.
	UpdateConfirmedStatus(ctx context.Context, id AccountIdentifier, txid string, status Status) error

	// BatchReconcile applies many per-account reconciliation requests in a
	// single read-modify-write pass.
	BatchReconcile(ctx context.Context, reqs []ReconcileRequest) error

	// UpdatePendingTxs reconciles the pending list of one account.
	UpdatePendingTxs(ctx context.Context, id AccountIdentifier, update PendingUpdate) error

	// UpdateConfirmedTxs saves and removes confirmed records of one account.
	UpdateConfirmedTxs(ctx context.Context, id AccountIdentifier, toSave, toRemove []HistoryTx) error

	// ListPending returns the arranged pending list of one account.
	ListPending(ctx context.Context, q AccountQuery) ([]HistoryTx, error)

	// ListConfirmed returns the arranged confirmed list of one account.
	ListConfirmed(ctx context.Context, q AccountQuery) ([]HistoryTx, error)

	// ListPendingMulti returns the arranged pending records of several accounts.
	ListPendingMulti(ctx context.Context, ids []AccountIdentifier) ([]HistoryTx, error)

	// ListConfirmedMulti returns the arranged confirmed records of several accounts.
	ListConfirmedMulti(ctx context.Context, ids []AccountIdentifier) ([]HistoryTx, error)

	// PendingNonces returns the nonces of the pending records of one account.
	PendingNonces(ctx context.Context, id AccountIdentifier) ([]int64, error)

	// MaxPendingNonce returns the highest pending nonce; ok is false when
	// there is none.
	MaxPendingNonce(ctx context.Context, id AccountIdentifier) (nonce int64, ok bool, err error)

	// MinPendingNonce returns the lowest pending nonce; ok is false when
	// there is none.
	MinPendingNonce(ctx context.Context, id AccountIdentifier) (nonce int64, ok bool, err error)

	// ClearPending empties the pending lists of every account.
	ClearPending(ctx context.Context) error

	// ClearAll empties the whole history.
	ClearAll(ctx context.Context) error
}

// Option configures the service.
type Option func(*service)

// WithClock overrides the time source used to stamp pending transactions.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// service is the concrete implementation of the Service interface.
type service struct {
	mu    sync.RWMutex // serializes read-compute-write units
	store rawStore
	now   func() time.Time

	tracer        trace.Tracer
	writes        metric.Int64Counter
	skippedWrites metric.Int64Counter
}

var _ Service = (*service)(nil)

// New creates a history service persisting its document through storage.
func New(storage BlobStorage, opts ...Option) *service {
	meter := otel.Meter(instrumentationName)

	// Instrument creation only fails on invalid names; the returned no-op
	// instrument is still safe to use.
	writes, _ := meter.Int64Counter("localhistory.document.writes",
		metric.WithDescription("History document writes"),
	)
	skipped, _ := meter.Int64Counter("localhistory.document.skipped_writes",
		metric.WithDescription("Mutations that left the history document unchanged"),
	)

	s := &service{
		store:         rawStore{storage: storage},
		now:           time.Now,
		tracer:        otel.Tracer(instrumentationName),
		writes:        writes,
		skippedWrites: skipped,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// startSpan opens a span for a public operation.
func (s *service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "localhistory."+name, trace.WithAttributes(attrs...))
}

// endSpan records err on span and closes it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// mutate runs fn as one serialized read-compute-write unit and records
// whether it resulted in a write.
func (s *service) mutate(ctx context.Context, op string, fn func(Document) (Document, bool)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	written, err := s.store.update(ctx, fn)
	if err != nil {
		return false, err
	}

	opAttr := metric.WithAttributes(attribute.String("operation", op))
	if written {
		s.writes.Add(ctx, 1, opAttr)
	} else {
		s.skippedWrites.Add(ctx, 1, opAttr)
	}

	return written, nil
}

// snapshot reads the current document under the read lock.
func (s *service) snapshot(ctx context.Context) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.store.read(ctx)
}
