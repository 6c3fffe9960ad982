package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradesim/walletd/internal/adapter/http/dto"
	"github.com/tradesim/walletd/internal/adapter/http/middleware"
	"github.com/tradesim/walletd/internal/domain"
	"github.com/tradesim/walletd/internal/usecase"
)

// WalletService defines the behavior needed by WalletHandler.
type WalletService interface {
	GetAccount(ctx context.Context, userID string) (*domain.Account, error)
	Record(ctx context.Context, input usecase.RecordInput) (*domain.LedgerEntry, error)
	Reset(ctx context.Context, userID string, newBalance int64, adminID string) (*domain.Account, error)
	ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.LedgerEntry, error)
	CountEntries(ctx context.Context, userID string) (int64, error)
	Verify(ctx context.Context, userID string) (*usecase.VerifyResult, error)
}

// AuditRecorder records administrative actions. May be nil to disable
// audit logging.
type AuditRecorder interface {
	RecordAction(ctx context.Context, input usecase.RecordActionInput) error
}

// WalletHandler handles wallet-related HTTP requests.
type WalletHandler struct {
	walletUC WalletService
	auditor  AuditRecorder
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC WalletService, auditor AuditRecorder) *WalletHandler {
	return &WalletHandler{walletUC: walletUC, auditor: auditor}
}

func (h *WalletHandler) audit(ctx context.Context, input usecase.RecordActionInput) {
	if h.auditor == nil {
		return
	}
	// Auditing is advisory, a failed write never fails the request.
	_ = h.auditor.RecordAction(ctx, input)
}

// Get retrieves a wallet by user ID.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	account, err := h.walletUC.GetAccount(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Record appends a ledger entry to a wallet.
func (h *WalletHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	var req dto.RecordEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	var adminID *string
	if actor, ok := middleware.GetUserFromContext(r.Context()); ok {
		adminID = &actor.ID
	}

	entry, err := h.walletUC.Record(r.Context(), req.ToUseCaseInput(userID, adminID))
	if adminID != nil {
		h.audit(r.Context(), usecase.RecordActionInput{
			AdminID:      *adminID,
			Action:       domain.AuditActionWalletRecord,
			ResourceType: "wallet",
			ResourceID:   userID,
			After:        entry,
			Err:          err,
		})
	}
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// ListEntries lists a wallet's ledger entries, newest first.
func (h *WalletHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.walletUC.ListEntries(r.Context(), usecase.ListEntriesInput{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	total, err := h.walletUC.CountEntries(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to count entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

// Reset sets a wallet balance to an explicit value via a compensating entry.
func (h *WalletHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	var req dto.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	adminID := "system"
	if actor, ok := middleware.GetUserFromContext(r.Context()); ok {
		adminID = actor.ID
	}

	account, err := h.walletUC.Reset(r.Context(), userID, req.NewBalance, adminID)
	h.audit(r.Context(), usecase.RecordActionInput{
		AdminID:      adminID,
		Action:       domain.AuditActionWalletReset,
		ResourceType: "wallet",
		ResourceID:   userID,
		After:        account,
		Err:          err,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reset wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Verify replays the ledger invariants for a wallet.
func (h *WalletHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	result, err := h.walletUC.Verify(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to verify wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VerifyFromResult(result))
}
