package domain

import (
	"time"
)

// Account is the materialized balance projection for one user's simulated
// wallet. All monetary fields are integer minor units (cents).
type Account struct {
	UserID      string
	Balance     int64
	TotalEarned int64
	TotalSpent  int64
	AllTimeHigh int64
	AllTimeLow  *int64
	LastReset   *time.Time
	UpdatedAt   time.Time
}

// CanApply checks whether applying the signed amount keeps the balance
// non-negative.
func (a *Account) CanApply(amount int64) error {
	if a.Balance+amount < 0 {
		return ErrInsufficientBalance
	}
	return nil
}

// Apply updates the projection for an entry of the given signed amount and
// returns the resulting balance. Callers must validate with CanApply first.
func (a *Account) Apply(amount int64, now time.Time) int64 {
	after := a.Balance + amount

	a.Balance = after
	if amount > 0 {
		a.TotalEarned += amount
	} else {
		a.TotalSpent += -amount
	}

	if after > a.AllTimeHigh {
		a.AllTimeHigh = after
	}

	if a.AllTimeLow == nil || after < *a.AllTimeLow {
		low := after
		a.AllTimeLow = &low
	}

	a.UpdatedAt = now

	return after
}
