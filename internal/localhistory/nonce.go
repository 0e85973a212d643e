package localhistory

import (
	"context"
	"slices"

	"github.com/gabapcia/localhistory/internal/pkg/logger"
)

// PendingNonces returns the nonces of the account's pending records in arranged
// order. Records without a nonce are skipped.
func (s *service) PendingNonces(ctx context.Context, id AccountIdentifier) ([]int64, error) {
	nonces, _, err := s.pendingNonces(ctx, id)
	return nonces, err
}

// MaxPendingNonce returns the highest pending nonce of the account. ok is false
// when there are no pending records or when any of them lacks a nonce.
func (s *service) MaxPendingNonce(ctx context.Context, id AccountIdentifier) (int64, bool, error) {
	return s.pendingNonceExtremum(ctx, id, slices.Max[[]int64, int64])
}

// MinPendingNonce returns the lowest pending nonce of the account. ok is false
// when there are no pending records or when any of them lacks a nonce.
func (s *service) MinPendingNonce(ctx context.Context, id AccountIdentifier) (int64, bool, error) {
	return s.pendingNonceExtremum(ctx, id, slices.Min[[]int64, int64])
}

func (s *service) pendingNonceExtremum(ctx context.Context, id AccountIdentifier, pick func([]int64) int64) (int64, bool, error) {
	nonces, malformed, err := s.pendingNonces(ctx, id)
	if err != nil {
		return 0, false, err
	}

	if malformed || len(nonces) == 0 {
		return 0, false, nil
	}

	return pick(nonces), true, nil
}

// pendingNonces lists the known nonces of the pending records and reports
// whether any pending record had none.
func (s *service) pendingNonces(ctx context.Context, id AccountIdentifier) ([]int64, bool, error) {
	pending, err := s.ListPending(ctx, AccountQuery{AccountIdentifier: id})
	if err != nil {
		return nil, false, err
	}

	nonces := make([]int64, 0, len(pending))
	malformed := false

	for _, tx := range pending {
		if tx.Nonce == nil {
			malformed = true
			logger.Warn(ctx, "pending tx without nonce",
				"tx.id", tx.ID,
				"account.network", id.NetworkID,
			)
			continue
		}
		nonces = append(nonces, *tx.Nonce)
	}

	return nonces, malformed, nil
}
