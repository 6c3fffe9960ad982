package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tradesim/walletd/internal/domain"
	"github.com/tradesim/walletd/internal/usecase"
	"github.com/tradesim/walletd/internal/usecase/mocks"
)

func TestAuditUseCase_RecordAction(t *testing.T) {
	auditRepo := mocks.NewMockAuditRepository()
	uc := usecase.NewAuditUseCase(auditRepo, mocks.NewMockIDGenerator())
	ctx := context.Background()

	err := uc.RecordAction(ctx, usecase.RecordActionInput{
		AdminID:      "admin-1",
		Action:       domain.AuditActionWalletReset,
		ResourceType: "wallet",
		ResourceID:   "user-1",
		After:        &domain.Account{UserID: "user-1", Balance: 1_000_000},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logs, err := uc.ListByResource(ctx, "wallet", "user-1", 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}

	log := logs[0]
	if log.ID == "" {
		t.Error("expected generated log ID")
	}
	if log.Status != domain.AuditStatusSuccess {
		t.Errorf("expected success status, got %s", log.Status)
	}
	if log.AfterState == nil || log.AfterState["Balance"] == nil {
		t.Errorf("expected after state to carry the account, got %+v", log.AfterState)
	}
}

func TestAuditUseCase_RecordActionFailure(t *testing.T) {
	auditRepo := mocks.NewMockAuditRepository()
	uc := usecase.NewAuditUseCase(auditRepo, mocks.NewMockIDGenerator())
	ctx := context.Background()

	err := uc.RecordAction(ctx, usecase.RecordActionInput{
		AdminID:      "admin-1",
		Action:       domain.AuditActionWalletRecord,
		ResourceType: "wallet",
		ResourceID:   "user-1",
		Err:          errors.New("insufficient balance"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logs, err := uc.ListByResource(ctx, "wallet", "user-1", 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}

	if logs[0].Status != domain.AuditStatusFailure {
		t.Errorf("expected failure status, got %s", logs[0].Status)
	}
	if logs[0].ErrorMessage != "insufficient balance" {
		t.Errorf("unexpected error message: %s", logs[0].ErrorMessage)
	}
}

func TestAuditUseCase_ListByResourcePagination(t *testing.T) {
	auditRepo := mocks.NewMockAuditRepository()
	uc := usecase.NewAuditUseCase(auditRepo, mocks.NewMockIDGenerator())
	ctx := context.Background()

	for range 5 {
		if err := uc.RecordAction(ctx, usecase.RecordActionInput{
			AdminID:      "admin-1",
			Action:       domain.AuditActionWalletRecord,
			ResourceType: "wallet",
			ResourceID:   "user-1",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	logs, err := uc.ListByResource(ctx, "wallet", "user-1", 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}

	logs, err = uc.ListByResource(ctx, "wallet", "other", 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("expected no logs for other resource, got %d", len(logs))
	}
}
