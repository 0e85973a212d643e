package localhistory

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gabapcia/localhistory/internal/pkg/logger"
	"github.com/gabapcia/localhistory/internal/pkg/types"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ErrMissingTxID is returned by UpdateConfirmedStatus when txid is blank.
var ErrMissingTxID = errors.New("txid is required")

// ReconcileRequest describes the reconciliation of one account.
//
// PendingTxs is an explicit replacement of the pending list: nil means "not
// supplied" while an empty, non-nil slice clears the list. ConfirmedTxs and
// OnChainTxs are evidence only; they retire matching pending records but are
// not stored. ConfirmedTxsToSave and ConfirmedTxsToRemove edit the confirmed
// list.
type ReconcileRequest struct {
	Account              AccountIdentifier `json:"account"`
	ConfirmedTxs         []HistoryTx       `json:"confirmedTxs,omitempty"`
	OnChainTxs           []HistoryTx       `json:"onChainHistoryTxs,omitempty"`
	PendingTxs           []HistoryTx       `json:"pendingTxs"`
	ConfirmedTxsToSave   []HistoryTx       `json:"confirmedTxsToSave,omitempty"`
	ConfirmedTxsToRemove []HistoryTx       `json:"confirmedTxsToRemove,omitempty"`
}

// PendingUpdate is the pending-only subset of a ReconcileRequest.
type PendingUpdate struct {
	ConfirmedTxs []HistoryTx
	OnChainTxs   []HistoryTx
	PendingTxs   []HistoryTx
}

// SavePending stamps txs with the current time and merges them in front of the
// existing pending list. On an id collision the incoming record wins. Records
// that are not Pending are dropped. Nothing is written when txs is empty.
func (s *service) SavePending(ctx context.Context, id AccountIdentifier, txs []HistoryTx) (err error) {
	ctx, span := s.startSpan(ctx, "SavePending", attribute.Int("txs.count", len(txs)))
	defer func() { endSpan(span, err) }()

	key, err := BuildKey(id)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("account.key", string(key)))

	if len(txs) == 0 {
		return nil
	}

	now := s.now().UnixMilli()
	stamped := make([]HistoryTx, len(txs))
	for i, tx := range txs {
		tx.CreatedAt = now
		tx.UpdatedAt = now
		stamped[i] = tx
	}

	_, err = s.mutate(ctx, "save_pending", func(doc Document) (Document, bool) {
		doc.PendingTxs[key] = retainPending(append(stamped, doc.pending(key)...))
		return doc, true
	})
	if err != nil {
		return err
	}

	logger.Debug(ctx, "pending txs saved",
		"account.key", key,
		"txs.count", len(txs),
	)

	return nil
}

// SaveConfirmed merges txs in front of the existing confirmed list. On an id
// collision the incoming record wins, Pending records are dropped and the
// list is capped at MaxConfirmedTxs. Nothing is written when txs is empty.
func (s *service) SaveConfirmed(ctx context.Context, id AccountIdentifier, txs []HistoryTx) (err error) {
	ctx, span := s.startSpan(ctx, "SaveConfirmed", attribute.Int("txs.count", len(txs)))
	defer func() { endSpan(span, err) }()

	key, err := BuildKey(id)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("account.key", string(key)))

	if len(txs) == 0 {
		return nil
	}

	_, err = s.mutate(ctx, "save_confirmed", func(doc Document) (Document, bool) {
		doc.ConfirmedTxs[key] = retainConfirmed(append(slices.Clone(txs), doc.confirmed(key)...))
		return doc, true
	})
	if err != nil {
		return err
	}

	logger.Debug(ctx, "confirmed txs saved",
		"account.key", key,
		"txs.count", len(txs),
	)

	return nil
}

// UpdateConfirmedStatus replaces the status of the confirmed record whose
// transaction hash equals txid. It is a no-op when no record matches or the
// status is already the requested one. A Pending status is rejected since a
// confirmed record may never be pending, and so is a blank txid.
func (s *service) UpdateConfirmedStatus(ctx context.Context, id AccountIdentifier, txid string, status Status) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateConfirmedStatus",
		attribute.String("tx.txid", txid),
		attribute.String("tx.status", string(status)),
	)
	defer func() { endSpan(span, err) }()

	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	if status.IsPending() {
		return fmt.Errorf("%w: confirmed transactions cannot be %s", ErrInvalidStatus, status)
	}
	if strings.TrimSpace(txid) == "" {
		return ErrMissingTxID
	}

	key, err := BuildKey(id)
	if err != nil {
		return err
	}

	written, err := s.mutate(ctx, "update_confirmed_status", func(doc Document) (Document, bool) {
		confirmed := doc.confirmed(key)

		idx := slices.IndexFunc(confirmed, func(tx HistoryTx) bool { return tx.TxID == txid })
		if idx == -1 || confirmed[idx].Status == status {
			return doc, false
		}

		updated := slices.Clone(confirmed)
		updated[idx].Status = status
		doc.ConfirmedTxs[key] = updated
		return doc, true
	})
	if err != nil {
		return err
	}

	logger.Debug(ctx, "confirmed tx status update processed",
		"account.key", key,
		"tx.txid", txid,
		"tx.status", status,
		"written", written,
	)

	return nil
}

// BatchReconcile applies every request in one read-modify-write pass over the
// document. Requests are processed in order; several requests for the same
// account see each other's results. The document is not written at all when
// no request changes anything.
//
// All account identifiers are validated before the document is read, so an
// invalid request aborts the whole batch without side effects.
func (s *service) BatchReconcile(ctx context.Context, reqs []ReconcileRequest) (err error) {
	passID := uuid.NewString()

	ctx, span := s.startSpan(ctx, "BatchReconcile",
		attribute.String("reconcile.pass_id", passID),
		attribute.Int("reconcile.requests", len(reqs)),
	)
	defer func() { endSpan(span, err) }()

	keys := make([]AccountKey, len(reqs))
	for i, req := range reqs {
		if keys[i], err = BuildKey(req.Account); err != nil {
			return fmt.Errorf("reconcile request %d: %w", i, err)
		}
	}

	if len(reqs) == 0 {
		return nil
	}

	var pendingUpdates, confirmedUpdates map[AccountKey][]HistoryTx

	written, err := s.mutate(ctx, "batch_reconcile", func(doc Document) (Document, bool) {
		pendingUpdates = make(map[AccountKey][]HistoryTx)
		confirmedUpdates = make(map[AccountKey][]HistoryTx)

		for i, req := range reqs {
			key := keys[i]

			currentPending, ok := pendingUpdates[key]
			if !ok {
				currentPending = doc.pending(key)
			}
			if next, changed := resolvePending(currentPending, req); changed {
				pendingUpdates[key] = next
			}

			currentConfirmed, ok := confirmedUpdates[key]
			if !ok {
				currentConfirmed = doc.confirmed(key)
			}
			if next, changed := resolveConfirmed(currentConfirmed, req); changed {
				confirmedUpdates[key] = next
			}
		}

		if len(pendingUpdates) == 0 && len(confirmedUpdates) == 0 {
			return doc, false
		}

		maps.Copy(doc.PendingTxs, pendingUpdates)
		maps.Copy(doc.ConfirmedTxs, confirmedUpdates)
		return doc, true
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "local history reconciled",
		"reconcile.pass_id", passID,
		"reconcile.requests", len(reqs),
		"reconcile.pending_keys", len(pendingUpdates),
		"reconcile.confirmed_keys", len(confirmedUpdates),
		"written", written,
	)

	return nil
}

// UpdatePendingTxs reconciles the pending list of a single account. It is a
// one-request BatchReconcile.
func (s *service) UpdatePendingTxs(ctx context.Context, id AccountIdentifier, update PendingUpdate) error {
	return s.BatchReconcile(ctx, []ReconcileRequest{{
		Account:      id,
		ConfirmedTxs: update.ConfirmedTxs,
		OnChainTxs:   update.OnChainTxs,
		PendingTxs:   update.PendingTxs,
	}})
}

// UpdateConfirmedTxs saves and removes confirmed records of a single account.
// It is a one-request BatchReconcile.
func (s *service) UpdateConfirmedTxs(ctx context.Context, id AccountIdentifier, toSave, toRemove []HistoryTx) error {
	return s.BatchReconcile(ctx, []ReconcileRequest{{
		Account:              id,
		ConfirmedTxsToSave:   toSave,
		ConfirmedTxsToRemove: toRemove,
	}})
}

// ClearPending empties the pending lists of every account and keeps the
// confirmed history.
func (s *service) ClearPending(ctx context.Context) (err error) {
	ctx, span := s.startSpan(ctx, "ClearPending")
	defer func() { endSpan(span, err) }()

	_, err = s.mutate(ctx, "clear_pending", func(doc Document) (Document, bool) {
		if len(doc.PendingTxs) == 0 {
			return doc, false
		}
		doc.PendingTxs = make(map[AccountKey][]HistoryTx)
		return doc, true
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "pending local history cleared")
	return nil
}

// ClearAll empties the whole history. The current document is not read, so
// ClearAll also recovers from an undecodable document.
func (s *service) ClearAll(ctx context.Context) (err error) {
	ctx, span := s.startSpan(ctx, "ClearAll")
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.write(ctx, emptyDocument()); err != nil {
		return err
	}
	s.writes.Add(ctx, 1)

	logger.Info(ctx, "local history cleared")
	return nil
}

// resolvePending computes the new pending list of one account for req. The
// boolean is false when the list must stay as it is.
func resolvePending(current []HistoryTx, req ReconcileRequest) ([]HistoryTx, bool) {
	if req.PendingTxs != nil {
		if len(req.PendingTxs) == 0 && len(current) == 0 {
			return nil, false
		}
		return retainPending(req.PendingTxs), true
	}

	evidence := evidenceIDs(req)
	if len(evidence) == 0 || len(current) == 0 {
		return nil, false
	}

	kept := make([]HistoryTx, 0, len(current))
	for _, tx := range current {
		if !evidence.Has(tx.ID) {
			kept = append(kept, tx)
		}
	}

	if len(kept) == len(current) {
		return nil, false
	}

	return kept, true
}

// evidenceIDs collects every local id that the request proves settled: the ids
// of confirmed, on-chain and to-be-saved confirmed records plus their
// originalId aliases. A to-be-saved record that is still pending never lands
// in the confirmed list, so it is not evidence.
func evidenceIDs(req ReconcileRequest) types.Set[string] {
	ids := types.NewSet[string]()
	add := func(tx HistoryTx) {
		ids.Add(tx.ID)
		if tx.OriginalID != "" {
			ids.Add(tx.OriginalID)
		}
	}

	for _, list := range [][]HistoryTx{req.ConfirmedTxs, req.OnChainTxs} {
		for _, tx := range list {
			add(tx)
		}
	}

	for _, tx := range req.ConfirmedTxsToSave {
		if !tx.Status.IsPending() {
			add(tx)
		}
	}

	return ids
}

// resolveConfirmed computes the new confirmed list of one account for req.
// The boolean is false when the list must stay as it is.
func resolveConfirmed(current []HistoryTx, req ReconcileRequest) ([]HistoryTx, bool) {
	if len(req.ConfirmedTxsToSave) == 0 && len(req.ConfirmedTxsToRemove) == 0 {
		return nil, false
	}

	merged := uniqueByID(append(slices.Clone(req.ConfirmedTxsToSave), current...))
	merged = withoutIDs(merged, idsOf(req.ConfirmedTxsToRemove))

	return retainConfirmed(merged), true
}
