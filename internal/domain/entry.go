package domain

import (
	"time"
)

// Kind classifies a balance-affecting event.
type Kind string

const (
	KindInitialDeposit  Kind = "initial_deposit"
	KindTierBonus       Kind = "tier_bonus"
	KindContestPrize    Kind = "contest_prize"
	KindTradeProfit     Kind = "trade_profit"
	KindTradeLoss       Kind = "trade_loss"
	KindAdminAdjustment Kind = "admin_adjustment"
	KindReset           Kind = "reset"
	KindEducationReward Kind = "education_reward"
)

var validKinds = map[Kind]bool{
	KindInitialDeposit:  true,
	KindTierBonus:       true,
	KindContestPrize:    true,
	KindTradeProfit:     true,
	KindTradeLoss:       true,
	KindAdminAdjustment: true,
	KindReset:           true,
	KindEducationReward: true,
}

// IsValid checks if the kind is one of the enumerated transaction kinds.
func (k Kind) IsValid() bool {
	return validKinds[k]
}

// LedgerEntry is one immutable, signed balance-affecting event. Entries are
// never updated or deleted; created-at order defines the canonical history.
type LedgerEntry struct {
	ID           string
	UserID       string
	Kind         Kind
	Amount       int64
	BalanceAfter int64
	Description  string
	ReferenceID  *string
	AdminID      *string
	CreatedAt    time.Time
}
