package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"rtub-system/internal/entities"
	apperrors "rtub-system/pkg/errors"
)

type ChatRepositoryInterface interface {
	Create(ctx context.Context, message entities.ChatMessage) error
	FindByID(ctx context.Context, id string) (*entities.ChatMessage, error)
	GetByEvent(ctx context.Context, eventID uint64, limit int) ([]*entities.ChatMessage, error)
	MarkDeleted(ctx context.Context, id string) error
}

type chatRepository struct {
	storage *pgxpool.Pool
}

func NewChatRepository(storage *pgxpool.Pool) ChatRepositoryInterface {
	return &chatRepository{storage: storage}
}

func (r *chatRepository) Create(ctx context.Context, message entities.ChatMessage) error {
	_, err := r.storage.Exec(ctx,
		`INSERT INTO chat_messages (id, event_id, member_id, message, sent_at, deleted)
		 VALUES ($1, $2, $3, $4, $5, FALSE)`,
		message.ID, message.EventID, message.MemberID, message.Message, message.SentAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return apperrors.ErrConflict
			case "23503":
				return apperrors.ErrNotFound
			}
		}
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

func (r *chatRepository) FindByID(ctx context.Context, id string) (*entities.ChatMessage, error) {
	var m entities.ChatMessage
	err := r.storage.QueryRow(ctx,
		`SELECT cm.id, cm.event_id, cm.member_id, cm.message, cm.sent_at, cm.deleted, mem.name
		 FROM chat_messages cm
		 JOIN members mem ON mem.id = cm.member_id
		 WHERE cm.id = $1`,
		id).Scan(&m.ID, &m.EventID, &m.MemberID, &m.Message, &m.SentAt, &m.Deleted, &m.MemberName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan chat_messages row: %w", err)
	}
	return &m, nil
}

// GetByEvent returns the most recent messages first, deleted ones excluded.
func (r *chatRepository) GetByEvent(ctx context.Context, eventID uint64, limit int) ([]*entities.ChatMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.storage.Query(ctx,
		`SELECT cm.id, cm.event_id, cm.member_id, cm.message, cm.sent_at, cm.deleted, mem.name
		 FROM chat_messages cm
		 JOIN members mem ON mem.id = cm.member_id
		 WHERE cm.event_id = $1 AND NOT cm.deleted
		 ORDER BY cm.sent_at DESC
		 LIMIT $2`,
		eventID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*entities.ChatMessage, 0)
	for rows.Next() {
		var m entities.ChatMessage
		if err := rows.Scan(&m.ID, &m.EventID, &m.MemberID, &m.Message, &m.SentAt, &m.Deleted, &m.MemberName); err != nil {
			return nil, fmt.Errorf("failed to scan chat_messages row: %w", err)
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

func (r *chatRepository) MarkDeleted(ctx context.Context, id string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE chat_messages SET deleted = TRUE WHERE id = $1 AND NOT deleted`, id)
	if err != nil {
		return fmt.Errorf("failed to delete chat message: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
