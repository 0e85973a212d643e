package localhistory

import (
	"slices"

	"github.com/gabapcia/localhistory/internal/pkg/types"
)

// MaxConfirmedTxs is the retention cap of the confirmed list of one account.
const MaxConfirmedTxs = 50

// uniqueByID drops every record whose id was already seen earlier in txs, so
// the first occurrence wins. The result is always a fresh, non-nil slice.
func uniqueByID(txs []HistoryTx) []HistoryTx {
	seen := types.NewSet[string]()
	result := make([]HistoryTx, 0, len(txs))

	for _, tx := range txs {
		if seen.Has(tx.ID) {
			continue
		}
		seen.Add(tx.ID)
		result = append(result, tx)
	}

	return result
}

// capConfirmed keeps the first MaxConfirmedTxs records. Callers put the newest
// data first, so the oldest entries are the ones evicted.
func capConfirmed(txs []HistoryTx) []HistoryTx {
	if len(txs) <= MaxConfirmedTxs {
		return txs
	}
	return txs[:MaxConfirmedTxs]
}

// retainPending enforces the pending list invariants: unique ids and only
// Pending records.
func retainPending(txs []HistoryTx) []HistoryTx {
	return slices.DeleteFunc(uniqueByID(txs), func(tx HistoryTx) bool {
		return !tx.Status.IsPending()
	})
}

// retainConfirmed enforces the confirmed list invariants: unique ids, no
// Pending records and at most MaxConfirmedTxs entries.
func retainConfirmed(txs []HistoryTx) []HistoryTx {
	settled := slices.DeleteFunc(uniqueByID(txs), func(tx HistoryTx) bool {
		return tx.Status.IsPending()
	})
	return capConfirmed(settled)
}

// withoutIDs removes every record whose id belongs to ids.
func withoutIDs(txs []HistoryTx, ids types.Set[string]) []HistoryTx {
	if len(ids) == 0 {
		return txs
	}
	return slices.DeleteFunc(txs, func(tx HistoryTx) bool {
		return ids.Has(tx.ID)
	})
}

// idsOf collects the ids of txs.
func idsOf(txs []HistoryTx) types.Set[string] {
	ids := types.NewSet[string]()
	for _, tx := range txs {
		ids.Add(tx.ID)
	}
	return ids
}
