package domain

import "time"

// Event types
const (
	EventTypeWalletProvisioned   = "wallet.provisioned"
	EventTypeWalletEntryRecorded = "wallet.entry_recorded"
	EventTypeWalletReset         = "wallet.reset"
	EventTypeUserCreated         = "user.created"
)

// Aggregate types
const (
	AggregateTypeWallet = "wallet"
	AggregateTypeUser   = "user"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// WalletProvisionedEvent payload
type WalletProvisionedEvent struct {
	UserID          string `json:"user_id"`
	Tier            string `json:"tier"`
	StartingBalance int64  `json:"starting_balance"`
}

// WalletEntryRecordedEvent payload
type WalletEntryRecordedEvent struct {
	EntryID      string `json:"entry_id"`
	UserID       string `json:"user_id"`
	Kind         string `json:"kind"`
	Amount       int64  `json:"amount"`
	BalanceAfter int64  `json:"balance_after"`
}

// WalletResetEvent payload
type WalletResetEvent struct {
	UserID     string `json:"user_id"`
	NewBalance int64  `json:"new_balance"`
	AdminID    string `json:"admin_id"`
}
