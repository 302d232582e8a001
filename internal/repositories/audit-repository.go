package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"rtub-system/internal/entities"
	"rtub-system/pkg/types"
)

type AuditRepositoryInterface interface {
	Create(ctx context.Context, record entities.AuditRecord) error
	GetAll(ctx context.Context, filter types.Filter) ([]*entities.AuditRecord, uint64, error)
	CreateEmail(ctx context.Context, record entities.EmailRecord) error
	GetEmails(ctx context.Context, filter types.Filter) ([]*entities.EmailRecord, uint64, error)
}

type auditRepository struct {
	storage *pgxpool.Pool
}

func NewAuditRepository(storage *pgxpool.Pool) AuditRepositoryInterface {
	return &auditRepository{storage: storage}
}

func (r *auditRepository) Create(ctx context.Context, record entities.AuditRecord) error {
	_, err := r.storage.Exec(ctx,
		`INSERT INTO audit_records (actor_id, action, entity, entity_id, detail, created_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())`,
		record.ActorID, record.Action, record.Entity, record.EntityID, record.Detail)
	if err != nil {
		return fmt.Errorf("failed to create audit record: %w", err)
	}
	return nil
}

func (r *auditRepository) GetAll(ctx context.Context, filter types.Filter) ([]*entities.AuditRecord, uint64, error) {
	where := ``
	args := []interface{}{}
	if actorID, ok := filter.Filter["actor_id"]; ok {
		where = ` WHERE actor_id = $1`
		args = append(args, actorID)
	} else if entity, ok := filter.Filter["entity"]; ok {
		where = ` WHERE entity = $1`
		args = append(args, entity)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(id) FROM audit_records`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit records: %w", err)
	}
	if total == 0 {
		return []*entities.AuditRecord{}, 0, nil
	}

	query := `SELECT id, actor_id, action, entity, entity_id, detail, created_at
	          FROM audit_records` + where + ` ORDER BY created_at DESC`
	if filter.WithPagination && filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d OFFSET %d`, filter.Limit, filter.Offset)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer rows.Close()

	records := make([]*entities.AuditRecord, 0)
	for rows.Next() {
		var rec entities.AuditRecord
		if err := rows.Scan(&rec.ID, &rec.ActorID, &rec.Action, &rec.Entity, &rec.EntityID, &rec.Detail, &rec.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit_records row: %w", err)
		}
		records = append(records, &rec)
	}
	return records, total, rows.Err()
}

func (r *auditRepository) CreateEmail(ctx context.Context, record entities.EmailRecord) error {
	_, err := r.storage.Exec(ctx,
		`INSERT INTO email_records (recipient_id, recipient_email, subject, body, kind, queued_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())`,
		record.RecipientID, record.RecipientEmail, record.Subject, record.Body, record.Kind)
	if err != nil {
		return fmt.Errorf("failed to create email record: %w", err)
	}
	return nil
}

func (r *auditRepository) GetEmails(ctx context.Context, filter types.Filter) ([]*entities.EmailRecord, uint64, error) {
	where := ``
	args := []interface{}{}
	if kind, ok := filter.Filter["kind"]; ok {
		where = ` WHERE kind = $1`
		args = append(args, kind)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(id) FROM email_records`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count email records: %w", err)
	}
	if total == 0 {
		return []*entities.EmailRecord{}, 0, nil
	}

	query := `SELECT id, recipient_id, recipient_email, subject, body, kind, queued_at
	          FROM email_records` + where + ` ORDER BY queued_at DESC`
	if filter.WithPagination && filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d OFFSET %d`, filter.Limit, filter.Offset)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query email records: %w", err)
	}
	defer rows.Close()

	records := make([]*entities.EmailRecord, 0)
	for rows.Next() {
		var rec entities.EmailRecord
		if err := rows.Scan(&rec.ID, &rec.RecipientID, &rec.RecipientEmail, &rec.Subject, &rec.Body, &rec.Kind, &rec.QueuedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan email_records row: %w", err)
		}
		records = append(records, &rec)
	}
	return records, total, rows.Err()
}
