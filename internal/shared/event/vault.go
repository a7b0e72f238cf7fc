package event

import "time"

const VaultChangedDestination string = "vault_changed"

// Vault change actions.
const (
	VaultActionAdded    string = "added"
	VaultActionDeleted  string = "deleted"
	VaultActionImported string = "imported"
)

// VaultChangedMessage is published whenever the set of stored tokens for a
// user changes. Count is the number of affected entries, which is always 1
// except for imports.
type VaultChangedMessage struct {
	UserID uint64    `json:"user_id"`
	Action string    `json:"action"`
	Count  int       `json:"count"`
	At     time.Time `json:"at"`
}
