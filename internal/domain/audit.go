package domain

import (
	"encoding/json"
	"time"
)

// AuditLog records an administrative action against a wallet for compliance
// and debugging. Unlike ledger entries, audit rows carry the actor and the
// before/after projection state.
type AuditLog struct {
	ID           string
	AdminID      string
	Action       AuditAction
	ResourceType string
	ResourceID   string
	BeforeState  JSON
	AfterState   JSON
	Status       AuditStatus
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	AuditActionWalletRecord AuditAction = "wallet.record"
	AuditActionWalletReset  AuditAction = "wallet.reset"
)

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}
