package localhistory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrBlobNotFound is returned by BlobStorage.GetBlob when nothing has been
// persisted yet under the requested entity.
var ErrBlobNotFound = errors.New("blob not found")

// entityName is the blob entity under which the history document is persisted.
const entityName = "localHistory"

// BlobStorage is the persisted key-value blob store backing the history.
//
// Implementations must replace a blob atomically: a reader observes either the
// previous or the new document, never a mix of both.
type BlobStorage interface {
	// GetBlob returns the raw document stored under entity, or ErrBlobNotFound.
	GetBlob(ctx context.Context, entity string) ([]byte, error)

	// SetBlob replaces the raw document stored under entity.
	SetBlob(ctx context.Context, entity string, data []byte) error
}

// Document is the persisted shape of the local history: pending and confirmed
// transactions, each grouped by AccountKey.
type Document struct {
	PendingTxs   map[AccountKey][]HistoryTx `json:"pendingTxs"`
	ConfirmedTxs map[AccountKey][]HistoryTx `json:"confirmedTxs"`
}

// emptyDocument returns a document with both mappings initialized.
func emptyDocument() Document {
	return Document{
		PendingTxs:   make(map[AccountKey][]HistoryTx),
		ConfirmedTxs: make(map[AccountKey][]HistoryTx),
	}
}

// normalize replaces nil mappings and nil lists with empty ones.
func (d Document) normalize() Document {
	if d.PendingTxs == nil {
		d.PendingTxs = make(map[AccountKey][]HistoryTx)
	}
	if d.ConfirmedTxs == nil {
		d.ConfirmedTxs = make(map[AccountKey][]HistoryTx)
	}

	for key, txs := range d.PendingTxs {
		if txs == nil {
			d.PendingTxs[key] = []HistoryTx{}
		}
	}
	for key, txs := range d.ConfirmedTxs {
		if txs == nil {
			d.ConfirmedTxs[key] = []HistoryTx{}
		}
	}

	return d
}

// pending returns the pending list for key, empty when the key is unknown.
func (d Document) pending(key AccountKey) []HistoryTx {
	return d.PendingTxs[key]
}

// confirmed returns the confirmed list for key, empty when the key is unknown.
func (d Document) confirmed(key AccountKey) []HistoryTx {
	return d.ConfirmedTxs[key]
}

// rawStore is the only component that touches BlobStorage. It hides the
// serialization format and always hands out fully-formed documents.
type rawStore struct {
	storage BlobStorage
}

// read loads the current document, returning an empty one when nothing has
// been persisted.
func (r rawStore) read(ctx context.Context) (Document, error) {
	data, err := r.storage.GetBlob(ctx, entityName)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return emptyDocument(), nil
		}
		return Document{}, fmt.Errorf("read local history: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode local history: %w", err)
	}

	return doc.normalize(), nil
}

// write replaces the persisted document.
func (r rawStore) write(ctx context.Context, doc Document) error {
	data, err := json.Marshal(doc.normalize())
	if err != nil {
		return fmt.Errorf("encode local history: %w", err)
	}

	if err := r.storage.SetBlob(ctx, entityName, data); err != nil {
		return fmt.Errorf("write local history: %w", err)
	}

	return nil
}

// update applies fn to the current document and persists the result when fn
// reports a change. It returns whether a write happened.
//
// update is not atomic on its own; callers serialize it with the service lock.
func (r rawStore) update(ctx context.Context, fn func(Document) (Document, bool)) (bool, error) {
	doc, err := r.read(ctx)
	if err != nil {
		return false, err
	}

	next, changed := fn(doc)
	if !changed {
		return false, nil
	}

	return true, r.write(ctx, next)
}
