package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradesim/walletd/internal/domain"
	"github.com/tradesim/walletd/internal/infrastructure/postgres/generated"
)

// AuditRepository implements usecase.AuditRepository.
type AuditRepository struct {
	queries *generated.Queries
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{queries: generated.New(pool)}
}

// Create inserts an audit log row.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	before, err := marshalJSONState(log.BeforeState)
	if err != nil {
		return fmt.Errorf("marshal before state: %w", err)
	}

	after, err := marshalJSONState(log.AfterState)
	if err != nil {
		return fmt.Errorf("marshal after state: %w", err)
	}

	return r.queries.CreateAuditLog(ctx, generated.CreateAuditLogParams{
		ID:           log.ID,
		AdminID:      log.AdminID,
		Action:       string(log.Action),
		ResourceType: log.ResourceType,
		ResourceID:   log.ResourceID,
		BeforeState:  before,
		AfterState:   after,
		Status:       string(log.Status),
		ErrorMessage: stringToPgText(log.ErrorMessage),
		CreatedAt:    timeToPgTimestamptz(log.CreatedAt),
	})
}

// GetByResourceID returns audit logs for a resource, newest first.
func (r *AuditRepository) GetByResourceID(ctx context.Context, resourceType, resourceID string, limit, offset int) ([]*domain.AuditLog, error) {
	rows, err := r.queries.ListAuditLogsByResource(ctx, generated.ListAuditLogsByResourceParams{
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Limit:        int32(limit),
		Offset:       int32(offset),
	})
	if err != nil {
		return nil, err
	}

	logs := make([]*domain.AuditLog, 0, len(rows))

	for _, row := range rows {
		log, err := rowToAuditLog(row)
		if err != nil {
			return nil, err
		}

		logs = append(logs, log)
	}

	return logs, nil
}

func rowToAuditLog(row generated.AuditLog) (*domain.AuditLog, error) {
	before, err := unmarshalJSONState(row.BeforeState)
	if err != nil {
		return nil, fmt.Errorf("unmarshal before state %s: %w", row.ID, err)
	}

	after, err := unmarshalJSONState(row.AfterState)
	if err != nil {
		return nil, fmt.Errorf("unmarshal after state %s: %w", row.ID, err)
	}

	return &domain.AuditLog{
		ID:           row.ID,
		AdminID:      row.AdminID,
		Action:       domain.AuditAction(row.Action),
		ResourceType: row.ResourceType,
		ResourceID:   row.ResourceID,
		BeforeState:  before,
		AfterState:   after,
		Status:       domain.AuditStatus(row.Status),
		ErrorMessage: row.ErrorMessage.String,
		CreatedAt:    row.CreatedAt.Time,
	}, nil
}

func marshalJSONState(state domain.JSON) ([]byte, error) {
	if state == nil {
		return nil, nil
	}

	return json.Marshal(state)
}

func unmarshalJSONState(data []byte) (domain.JSON, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var state domain.JSON
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	return state, nil
}
