package domain

// Tier is a subscription level determining the starting wallet balance.
type Tier string

const (
	TierFree  Tier = "free"
	TierPro   Tier = "pro"
	TierElite Tier = "elite"
)

// Starting balances in minor units. Free tier starts at $10,000.00.
var tierStartingBalance = map[Tier]int64{
	TierFree:  1_000_000,
	TierPro:   5_000_000,
	TierElite: 10_000_000,
}

// IsValid checks if the tier is a known subscription tier.
func (t Tier) IsValid() bool {
	_, ok := tierStartingBalance[t]
	return ok
}

// StartingBalance returns the wallet starting balance for the tier.
func (t Tier) StartingBalance() int64 {
	return tierStartingBalance[t]
}
