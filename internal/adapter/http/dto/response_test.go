package dto

import (
	"testing"
	"time"

	"github.com/tradesim/walletd/internal/domain"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{1, "$0.01"},
		{99, "$0.99"},
		{100, "$1.00"},
		{123456, "$1,234.56"},
		{1_000_000, "$10,000.00"},
		{5_000_000, "$50,000.00"},
		{10_000_000, "$100,000.00"},
		{123_456_789_01, "$123,456,789.01"},
		{-200_000, "-$2,000.00"},
		{-1, "-$0.01"},
	}

	for _, tt := range tests {
		if got := FormatUSD(tt.cents); got != tt.want {
			t.Fatalf("FormatUSD(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestAccountFromDomain(t *testing.T) {
	low := int64(800_000)
	now := time.Now()

	account := &domain.Account{
		UserID:      "user-1",
		Balance:     1_050_000,
		TotalEarned: 1_050_000,
		AllTimeHigh: 1_050_000,
		AllTimeLow:  &low,
		UpdatedAt:   now,
	}

	resp := AccountFromDomain(account)

	if resp.Formatted != "$10,500.00" {
		t.Fatalf("expected formatted balance, got %s", resp.Formatted)
	}
	if resp.AllTimeLow == nil || *resp.AllTimeLow != 800_000 {
		t.Fatalf("expected all time low to carry over, got %v", resp.AllTimeLow)
	}
}

func TestEntryFromDomainFormatsAmounts(t *testing.T) {
	entry := &domain.LedgerEntry{
		ID:           "e-1",
		UserID:       "user-1",
		Kind:         domain.KindTradeLoss,
		Amount:       -200_000,
		BalanceAfter: 850_000,
		Description:  "BTC trade closed",
	}

	resp := EntryFromDomain(entry)

	if resp.FormattedAmount != "-$2,000.00" {
		t.Fatalf("expected formatted amount, got %s", resp.FormattedAmount)
	}
	if resp.FormattedBalanceAfter != "$8,500.00" {
		t.Fatalf("expected formatted balance, got %s", resp.FormattedBalanceAfter)
	}
}
