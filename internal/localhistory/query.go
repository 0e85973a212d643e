package localhistory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// ErrTxNotFound is returned by GetByID when the account has no record with the
// requested history id.
var ErrTxNotFound = errors.New("history transaction not found")

// Arrange returns a copy of txs ordered from the most recently touched to the
// oldest (updatedAt, else createdAt, else zero). The sort is stable, so records
// with equal timestamps keep their stored order.
//
// When tokenIDOnNetwork is not nil only records involving that token are kept:
// a send, receive or approval of the token in any action or output action, or
// a transaction-level token tag equal to it. The empty id is a valid filter
// (native coin) but never matches the transaction-level tag.
func Arrange(txs []HistoryTx, tokenIDOnNetwork *string) []HistoryTx {
	result := slices.Clone(txs)
	if result == nil {
		result = []HistoryTx{}
	}

	slices.SortStableFunc(result, func(a, b HistoryTx) int {
		return cmp.Compare(b.touchedAt(), a.touchedAt())
	})

	if tokenIDOnNetwork == nil {
		return result
	}

	return slices.DeleteFunc(result, func(tx HistoryTx) bool {
		return !involvesToken(tx, *tokenIDOnNetwork)
	})
}

// involvesToken reports whether tx touches the given token.
func involvesToken(tx HistoryTx, tokenIDOnNetwork string) bool {
	if tokenIDOnNetwork != "" && tx.TokenIDOnNetwork == tokenIDOnNetwork {
		return true
	}

	for _, actions := range [][]Action{tx.Actions, tx.OutputActions} {
		for _, action := range actions {
			if actionIncludesToken(action, tokenIDOnNetwork) {
				return true
			}
		}
	}

	return false
}

// actionIncludesToken reports whether a single action sends, receives or
// approves the token.
func actionIncludesToken(action Action, tokenIDOnNetwork string) bool {
	hasToken := func(t TokenTransfer) bool { return t.TokenIDOnNetwork == tokenIDOnNetwork }

	if transfer := action.AssetTransfer; transfer != nil {
		if slices.ContainsFunc(transfer.Sends, hasToken) || slices.ContainsFunc(transfer.Receives, hasToken) {
			return true
		}
	}

	return action.TokenApprove != nil && action.TokenApprove.TokenIDOnNetwork == tokenIDOnNetwork
}

// FilterAccountTxs keeps the records that belong to the account: same network
// and, depending on how the account is identified, same xpub or same owner.
// Xpub and owner are compared case-insensitively.
func FilterAccountTxs(id AccountIdentifier, txs []HistoryTx) []HistoryTx {
	return slices.DeleteFunc(slices.Clone(txs), func(tx HistoryTx) bool {
		if tx.NetworkID != id.NetworkID {
			return true
		}
		if id.Xpub != "" {
			return !strings.EqualFold(tx.Xpub, id.Xpub)
		}
		return !strings.EqualFold(tx.Owner, id.AccountAddress)
	})
}

// GetByID searches the pending list of the account first, then the confirmed one.
func (s *service) GetByID(ctx context.Context, id AccountIdentifier, historyID string) (tx HistoryTx, err error) {
	ctx, span := s.startSpan(ctx, "GetByID", attribute.String("tx.id", historyID))
	defer func() { endSpan(span, err) }()

	key, err := BuildKey(id)
	if err != nil {
		return HistoryTx{}, err
	}

	doc, err := s.snapshot(ctx)
	if err != nil {
		return HistoryTx{}, err
	}

	for _, list := range [][]HistoryTx{doc.pending(key), doc.confirmed(key)} {
		if idx := slices.IndexFunc(list, func(candidate HistoryTx) bool { return candidate.ID == historyID }); idx != -1 {
			return list[idx], nil
		}
	}

	return HistoryTx{}, ErrTxNotFound
}

// ListPending returns the arranged pending list of one account, optionally
// filtered by token.
func (s *service) ListPending(ctx context.Context, q AccountQuery) ([]HistoryTx, error) {
	return s.list(ctx, "ListPending", q, Document.pending)
}

// ListConfirmed returns the arranged confirmed list of one account, optionally
// filtered by token.
func (s *service) ListConfirmed(ctx context.Context, q AccountQuery) ([]HistoryTx, error) {
	return s.list(ctx, "ListConfirmed", q, Document.confirmed)
}

// ListPendingMulti returns the pending records of every account, flattened and
// arranged together.
func (s *service) ListPendingMulti(ctx context.Context, ids []AccountIdentifier) ([]HistoryTx, error) {
	return s.listMulti(ctx, "ListPendingMulti", ids, Document.pending)
}

// ListConfirmedMulti returns the confirmed records of every account, flattened
// and arranged together.
func (s *service) ListConfirmedMulti(ctx context.Context, ids []AccountIdentifier) ([]HistoryTx, error) {
	return s.listMulti(ctx, "ListConfirmedMulti", ids, Document.confirmed)
}

func (s *service) list(ctx context.Context, op string, q AccountQuery, pick func(Document, AccountKey) []HistoryTx) (txs []HistoryTx, err error) {
	var attrs []attribute.KeyValue
	if q.TokenIDOnNetwork != nil {
		attrs = append(attrs, attribute.String("token.id", *q.TokenIDOnNetwork))
	}

	ctx, span := s.startSpan(ctx, op, attrs...)
	defer func() { endSpan(span, err) }()

	key, err := BuildKey(q.AccountIdentifier)
	if err != nil {
		return nil, err
	}

	doc, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return Arrange(pick(doc, key), q.TokenIDOnNetwork), nil
}

func (s *service) listMulti(ctx context.Context, op string, ids []AccountIdentifier, pick func(Document, AccountKey) []HistoryTx) (txs []HistoryTx, err error) {
	ctx, span := s.startSpan(ctx, op, attribute.Int("accounts.count", len(ids)))
	defer func() { endSpan(span, err) }()

	keys, err := buildKeys(ids)
	if err != nil {
		return nil, err
	}

	doc, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var all []HistoryTx
	for _, key := range keys {
		all = append(all, pick(doc, key)...)
	}

	return Arrange(all, nil), nil
}
