package usecase

import (
	"context"
	"time"

	"github.com/tradesim/walletd/internal/domain"
)

// AuditUseCase records administrative actions against wallets.
type AuditUseCase struct {
	auditRepo AuditRepository
	idGen     IDGenerator
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(auditRepo AuditRepository, idGen IDGenerator) *AuditUseCase {
	return &AuditUseCase{
		auditRepo: auditRepo,
		idGen:     idGen,
	}
}

// RecordActionInput represents one auditable admin action.
type RecordActionInput struct {
	AdminID      string
	Action       domain.AuditAction
	ResourceType string
	ResourceID   string
	Before       any
	After        any
	Err          error
}

// RecordAction writes an audit log row. Audit failures are returned to the
// caller but must not roll back the action they describe.
func (uc *AuditUseCase) RecordAction(ctx context.Context, input RecordActionInput) error {
	log := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		AdminID:      input.AdminID,
		Action:       input.Action,
		ResourceType: input.ResourceType,
		ResourceID:   input.ResourceID,
		BeforeState:  domain.MarshalState(input.Before),
		AfterState:   domain.MarshalState(input.After),
		Status:       domain.AuditStatusSuccess,
		CreatedAt:    time.Now().UTC(),
	}

	if input.Err != nil {
		log.Status = domain.AuditStatusFailure
		log.ErrorMessage = input.Err.Error()
	}

	return uc.auditRepo.Create(ctx, log)
}

// ListByResource lists audit logs for a resource.
func (uc *AuditUseCase) ListByResource(ctx context.Context, resourceType, resourceID string, limit, offset int) ([]*domain.AuditLog, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.auditRepo.GetByResourceID(ctx, resourceType, resourceID, limit, offset)
}
