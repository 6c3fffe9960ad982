package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradesim/walletd/internal/adapter/http/dto"
	"github.com/tradesim/walletd/internal/domain"
)

// AuditService defines the behavior needed by AuditHandler.
type AuditService interface {
	ListByResource(ctx context.Context, resourceType, resourceID string, limit, offset int) ([]*domain.AuditLog, error)
}

// AuditHandler exposes the audit trail of administrative wallet actions.
type AuditHandler struct {
	auditUC AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditUC AuditService) *AuditHandler {
	return &AuditHandler{auditUC: auditUC}
}

// ListForWallet lists audit logs for a wallet, newest first.
func (h *AuditHandler) ListForWallet(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	logs, err := h.auditUC.ListByResource(r.Context(), "wallet", userID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list audit logs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}
