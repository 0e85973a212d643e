package localhistory

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/gabapcia/localhistory/internal/pkg/logger"

	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.Init(logger.WithLevel("error"))
}

// fixedNow is the clock used by services under test.
var fixedNow = time.UnixMilli(1_700_000_000_000)

var (
	evmAccount = AccountIdentifier{NetworkID: "evm--1", AccountAddress: "0xAbC"}
	btcAccount = AccountIdentifier{NetworkID: "btc--0", Xpub: "xpub6CUGRUo"}
)

// memoryBlobs is a minimal BlobStorage keeping blobs in memory and counting writes.
type memoryBlobs struct {
	mu      sync.Mutex
	data    map[string][]byte
	sets    int
	failSet error
}

func newMemoryBlobs() *memoryBlobs {
	return &memoryBlobs{data: make(map[string][]byte)}
}

func (m *memoryBlobs) GetBlob(_ context.Context, entity string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.data[entity]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return data, nil
}

func (m *memoryBlobs) SetBlob(_ context.Context, entity string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSet != nil {
		return m.failSet
	}
	m.data[entity] = data
	m.sets++
	return nil
}

func (m *memoryBlobs) writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

func newTestService(t *testing.T) (*service, *memoryBlobs) {
	t.Helper()

	blobs := newMemoryBlobs()
	return New(blobs, WithClock(func() time.Time { return fixedNow })), blobs
}

// seed writes doc directly into storage.
func seed(t *testing.T, blobs *memoryBlobs, doc Document) {
	t.Helper()

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	blobs.mu.Lock()
	blobs.data[entityName] = data
	blobs.mu.Unlock()
}

// stored decodes the document currently held by storage.
func stored(t *testing.T, blobs *memoryBlobs) Document {
	t.Helper()

	doc, err := rawStore{storage: blobs}.read(t.Context())
	require.NoError(t, err)
	return doc
}

func encodeDoc(t *testing.T, doc Document) []byte {
	t.Helper()

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func mustKey(t *testing.T, id AccountIdentifier) AccountKey {
	t.Helper()

	key, err := BuildKey(id)
	require.NoError(t, err)
	return key
}

func nonce(n int64) *int64 {
	return &n
}

func token(id string) *string {
	return &id
}

func pendingTx(id string) HistoryTx {
	return HistoryTx{ID: id, Status: StatusPending}
}

func confirmedTx(id string) HistoryTx {
	return HistoryTx{ID: id, TxID: "0x" + id, Status: StatusConfirmed}
}

func ids(txs []HistoryTx) []string {
	out := make([]string, 0, len(txs))
	for _, tx := range txs {
		out = append(out, tx.ID)
	}
	return out
}
