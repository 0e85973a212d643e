package localhistory

import (
	"errors"
	"fmt"
)

// ErrInvalidStatus is returned when a status value is unknown or not allowed
// for the requested operation.
var ErrInvalidStatus = errors.New("invalid transaction status")

// Status is the settlement state of a history transaction.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusFailed    Status = "Failed"
	StatusDropped   Status = "Dropped"
	StatusRemoved   Status = "Removed"
)

// IsPending reports whether the status is Pending. Every other status counts
// as settled for partitioning purposes.
func (s Status) IsPending() bool {
	return s == StatusPending
}

// ParseStatus converts a raw status string into a known Status.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusPending, StatusConfirmed, StatusFailed, StatusDropped, StatusRemoved:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// TokenTransfer is one leg of a decoded asset transfer.
type TokenTransfer struct {
	From             string `json:"from,omitempty"`
	To               string `json:"to,omitempty"`
	TokenIDOnNetwork string `json:"tokenIdOnNetwork"`
	Amount           string `json:"amount,omitempty"`
	Symbol           string `json:"symbol,omitempty"`
}

// AssetTransfer groups the outgoing and incoming legs of an action.
type AssetTransfer struct {
	From     string          `json:"from,omitempty"`
	To       string          `json:"to,omitempty"`
	Sends    []TokenTransfer `json:"sends,omitempty"`
	Receives []TokenTransfer `json:"receives,omitempty"`
}

// TokenApprove describes an allowance granted by the account.
type TokenApprove struct {
	Owner            string `json:"owner,omitempty"`
	Spender          string `json:"spender,omitempty"`
	TokenIDOnNetwork string `json:"tokenIdOnNetwork"`
	Amount           string `json:"amount,omitempty"`
}

// Action is a decoded step of a transaction.
type Action struct {
	Type          string         `json:"type,omitempty"`
	AssetTransfer *AssetTransfer `json:"assetTransfer,omitempty"`
	TokenApprove  *TokenApprove  `json:"tokenApprove,omitempty"`
}

// HistoryTx is one transaction record kept in the local history.
//
// Timestamps are epoch milliseconds. Nonce is only meaningful while the record
// is pending; a nil Nonce marks a record whose nonce could not be decoded.
type HistoryTx struct {
	ID               string   `json:"id"`
	OriginalID       string   `json:"originalId,omitempty"`
	TxID             string   `json:"txid,omitempty"`
	Status           Status   `json:"status"`
	Owner            string   `json:"owner,omitempty"`
	Xpub             string   `json:"xpub,omitempty"`
	NetworkID        string   `json:"networkId,omitempty"`
	Nonce            *int64   `json:"nonce,omitempty"`
	CreatedAt        int64    `json:"createdAt,omitempty"`
	UpdatedAt        int64    `json:"updatedAt,omitempty"`
	Actions          []Action `json:"actions,omitempty"`
	OutputActions    []Action `json:"outputActions,omitempty"`
	TokenIDOnNetwork string   `json:"tokenIdOnNetwork,omitempty"`
}

// touchedAt is the instant used to order records: updatedAt, falling back to
// createdAt, falling back to zero.
func (tx HistoryTx) touchedAt() int64 {
	if tx.UpdatedAt != 0 {
		return tx.UpdatedAt
	}
	return tx.CreatedAt
}
