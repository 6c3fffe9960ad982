package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tradesim/walletd/internal/adapter/http/dto"
	"github.com/tradesim/walletd/internal/adapter/http/middleware"
	"github.com/tradesim/walletd/internal/domain"
	"github.com/tradesim/walletd/internal/usecase"
)

type walletServiceStub struct {
	getFn    func(ctx context.Context, userID string) (*domain.Account, error)
	recordFn func(ctx context.Context, input usecase.RecordInput) (*domain.LedgerEntry, error)
	resetFn  func(ctx context.Context, userID string, newBalance int64, adminID string) (*domain.Account, error)
	listFn   func(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.LedgerEntry, error)
	countFn  func(ctx context.Context, userID string) (int64, error)
	verifyFn func(ctx context.Context, userID string) (*usecase.VerifyResult, error)
}

func (s *walletServiceStub) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	return s.getFn(ctx, userID)
}

type auditRecorderStub struct {
	actions []usecase.RecordActionInput
}

func (s *auditRecorderStub) RecordAction(ctx context.Context, input usecase.RecordActionInput) error {
	s.actions = append(s.actions, input)
	return nil
}

func (s *walletServiceStub) Record(ctx context.Context, input usecase.RecordInput) (*domain.LedgerEntry, error) {
	return s.recordFn(ctx, input)
}

func (s *walletServiceStub) Reset(ctx context.Context, userID string, newBalance int64, adminID string) (*domain.Account, error) {
	return s.resetFn(ctx, userID, newBalance, adminID)
}

func (s *walletServiceStub) ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.LedgerEntry, error) {
	return s.listFn(ctx, input)
}

func (s *walletServiceStub) CountEntries(ctx context.Context, userID string) (int64, error) {
	return s.countFn(ctx, userID)
}

func (s *walletServiceStub) Verify(ctx context.Context, userID string) (*usecase.VerifyResult, error) {
	return s.verifyFn(ctx, userID)
}

func TestWalletHandler_Get(t *testing.T) {
	account := &domain.Account{UserID: "user-1", Balance: 1_000_000}
	h := NewWalletHandler(&walletServiceStub{
		getFn: func(ctx context.Context, userID string) (*domain.Account, error) {
			if userID != "user-1" {
				t.Fatalf("expected user-1, got %s", userID)
			}
			return account, nil
		},
	}, nil)

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/wallets/user-1", nil), "userID", "user-1")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Balance != 1_000_000 || resp.Formatted != "$10,000.00" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestWalletHandler_Get_NotFound(t *testing.T) {
	h := NewWalletHandler(&walletServiceStub{
		getFn: func(ctx context.Context, userID string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}, nil)

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/wallets/nobody", nil), "userID", "nobody")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWalletHandler_Record_Success(t *testing.T) {
	var captured usecase.RecordInput
	h := NewWalletHandler(&walletServiceStub{
		recordFn: func(ctx context.Context, input usecase.RecordInput) (*domain.LedgerEntry, error) {
			captured = input
			return &domain.LedgerEntry{
				ID:           "e-1",
				UserID:       input.UserID,
				Kind:         input.Kind,
				Amount:       input.Amount,
				BalanceAfter: 1_050_000,
				Description:  input.Description,
			}, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.RecordEntryRequest{
		Kind:        "trade_profit",
		Amount:      50_000,
		Description: "BTC trade closed",
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodPost, "/wallets/user-1/entries", bytes.NewReader(body)), "userID", "user-1")
	rec := httptest.NewRecorder()

	h.Record(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.UserID != "user-1" || captured.Kind != domain.KindTradeProfit || captured.Amount != 50_000 {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
}

func TestWalletHandler_Record_AttachesActor(t *testing.T) {
	var captured usecase.RecordInput
	h := NewWalletHandler(&walletServiceStub{
		recordFn: func(ctx context.Context, input usecase.RecordInput) (*domain.LedgerEntry, error) {
			captured = input
			return &domain.LedgerEntry{ID: "e-1"}, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.RecordEntryRequest{Kind: "admin_adjustment", Amount: -5_000})
	req := setChiURLParam(httptest.NewRequest(http.MethodPost, "/wallets/user-1/entries", bytes.NewReader(body)), "userID", "user-1")
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, &domain.User{
		ID:   "admin-1",
		Role: domain.RoleAdmin,
	}))
	rec := httptest.NewRecorder()

	h.Record(rec, req)

	if captured.AdminID == nil || *captured.AdminID != "admin-1" {
		t.Fatalf("expected admin ID to be attached, got %+v", captured.AdminID)
	}
}

func TestWalletHandler_Record_DomainErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"insufficient balance", domain.ErrInsufficientBalance, http.StatusBadRequest},
		{"invalid kind", domain.ErrInvalidKind, http.StatusBadRequest},
		{"duplicate reference", domain.ErrDuplicateReference, http.StatusConflict},
		{"unknown account", domain.ErrAccountNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h := NewWalletHandler(&walletServiceStub{
				recordFn: func(ctx context.Context, input usecase.RecordInput) (*domain.LedgerEntry, error) {
					return nil, tt.err
				},
			}, nil)

			body, _ := json.Marshal(dto.RecordEntryRequest{Kind: "trade_loss", Amount: -200_000})
			req := setChiURLParam(httptest.NewRequest(http.MethodPost, "/wallets/user-1/entries", bytes.NewReader(body)), "userID", "user-1")
			rec := httptest.NewRecorder()

			h.Record(rec, req)

			if rec.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}

func TestWalletHandler_Record_InvalidJSON(t *testing.T) {
	h := NewWalletHandler(&walletServiceStub{
		recordFn: func(ctx context.Context, input usecase.RecordInput) (*domain.LedgerEntry, error) {
			t.Fatal("Record should not be called for invalid payload")
			return nil, nil
		},
	}, nil)

	req := setChiURLParam(httptest.NewRequest(http.MethodPost, "/wallets/user-1/entries", bytes.NewBufferString("{invalid")), "userID", "user-1")
	rec := httptest.NewRecorder()

	h.Record(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWalletHandler_ListEntries(t *testing.T) {
	h := NewWalletHandler(&walletServiceStub{
		listFn: func(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.LedgerEntry, error) {
			if input.Limit != 5 || input.Offset != 2 {
				t.Fatalf("expected limit=5 offset=2, got %+v", input)
			}
			return []*domain.LedgerEntry{{ID: "e-2"}, {ID: "e-1"}}, nil
		},
		countFn: func(ctx context.Context, userID string) (int64, error) {
			return 7, nil
		},
	}, nil)

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/wallets/user-1/entries?limit=5&offset=2", nil), "userID", "user-1")
	rec := httptest.NewRecorder()

	h.ListEntries(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListEntriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Entries) != 2 || resp.Total != 7 {
		t.Fatalf("unexpected page: %+v", resp)
	}
}

func TestWalletHandler_Reset(t *testing.T) {
	h := NewWalletHandler(&walletServiceStub{
		resetFn: func(ctx context.Context, userID string, newBalance int64, adminID string) (*domain.Account, error) {
			if newBalance != 1_000_000 {
				t.Fatalf("expected new balance 1000000, got %d", newBalance)
			}
			if adminID != "admin-1" {
				t.Fatalf("expected admin-1, got %s", adminID)
			}
			return &domain.Account{UserID: userID, Balance: newBalance}, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.ResetRequest{NewBalance: 1_000_000})
	req := setChiURLParam(httptest.NewRequest(http.MethodPost, "/wallets/user-1/reset", bytes.NewReader(body)), "userID", "user-1")
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, &domain.User{
		ID:   "admin-1",
		Role: domain.RoleAdmin,
	}))
	rec := httptest.NewRecorder()

	h.Reset(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestWalletHandler_Reset_RecordsAudit(t *testing.T) {
	auditor := &auditRecorderStub{}
	h := NewWalletHandler(&walletServiceStub{
		resetFn: func(ctx context.Context, userID string, newBalance int64, adminID string) (*domain.Account, error) {
			return &domain.Account{UserID: userID, Balance: newBalance}, nil
		},
	}, auditor)

	body, _ := json.Marshal(dto.ResetRequest{NewBalance: 500_000})
	req := setChiURLParam(httptest.NewRequest(http.MethodPost, "/wallets/user-1/reset", bytes.NewReader(body)), "userID", "user-1")
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, &domain.User{
		ID:   "admin-1",
		Role: domain.RoleAdmin,
	}))
	rec := httptest.NewRecorder()

	h.Reset(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(auditor.actions) != 1 {
		t.Fatalf("expected 1 audit action, got %d", len(auditor.actions))
	}
	action := auditor.actions[0]
	if action.AdminID != "admin-1" || action.Action != domain.AuditActionWalletReset || action.ResourceID != "user-1" {
		t.Fatalf("unexpected audit action: %+v", action)
	}
}

func TestWalletHandler_Verify(t *testing.T) {
	h := NewWalletHandler(&walletServiceStub{
		verifyFn: func(ctx context.Context, userID string) (*usecase.VerifyResult, error) {
			return &usecase.VerifyResult{
				UserID:     userID,
				Balance:    850_000,
				EntrySum:   850_000,
				Consistent: true,
			}, nil
		},
	}, nil)

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/wallets/user-1/verify", nil), "userID", "user-1")
	rec := httptest.NewRecorder()

	h.Verify(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.VerifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Consistent || resp.EntrySum != 850_000 {
		t.Fatalf("unexpected verify response: %+v", resp)
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}
