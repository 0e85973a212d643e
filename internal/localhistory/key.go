package localhistory

import (
	"errors"
	"strings"

	"github.com/gabapcia/localhistory/internal/pkg/validator"
)

// ErrMissingIdentifier is returned when neither an account address nor an
// extended public key is supplied for an account.
var ErrMissingIdentifier = errors.New("accountAddress or xpub is required")

// keySeparator joins the network id and the account identifier in an AccountKey.
const keySeparator = "_"

// AccountKey identifies one (network, account) pair inside the history document.
type AccountKey string

// AccountIdentifier names the account whose history is being read or written.
//
// Exactly one of AccountAddress or Xpub is expected. When both are set the
// xpub wins, since UTXO accounts are tracked by extended key. The network id
// may not contain the key separator, otherwise two accounts could share a key.
type AccountIdentifier struct {
	NetworkID      string `json:"networkId" validate:"notblank,excludes=_"`
	AccountAddress string `json:"accountAddress,omitempty"`
	Xpub           string `json:"xpub,omitempty"`
}

// AccountQuery is an AccountIdentifier plus an optional token filter. A nil
// TokenIDOnNetwork disables the filter; an empty one selects the native coin.
type AccountQuery struct {
	AccountIdentifier
	TokenIDOnNetwork *string `json:"tokenIdOnNetwork,omitempty"`
}

// BuildKey derives the AccountKey for the identifier.
//
// Addresses are compared case-insensitively, so they are lower-cased. Xpubs
// are case-significant and kept verbatim.
func BuildKey(id AccountIdentifier) (AccountKey, error) {
	address := strings.TrimSpace(id.AccountAddress)
	xpub := strings.TrimSpace(id.Xpub)

	if address == "" && xpub == "" {
		return "", ErrMissingIdentifier
	}

	if err := validator.Validate(id); err != nil {
		return "", err
	}

	identifier := strings.ToLower(address)
	if xpub != "" {
		identifier = xpub
	}

	return AccountKey(id.NetworkID + keySeparator + identifier), nil
}

// buildKeys derives keys for every identifier, failing on the first invalid one.
func buildKeys(ids []AccountIdentifier) ([]AccountKey, error) {
	keys := make([]AccountKey, 0, len(ids))
	for _, id := range ids {
		key, err := BuildKey(id)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
