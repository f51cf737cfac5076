package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"roomshare/internal/domain"
	"roomshare/pkg/logger"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListByThread(ctx context.Context, threadID uuid.UUID) ([]*domain.Message, error)
	// LastInThread returns (nil, nil) for a thread with no messages yet.
	LastInThread(ctx context.Context, threadID uuid.UUID) (*domain.Message, error)
	MarkRead(ctx context.Context, threadID, readerID uuid.UUID) error
	// CountSince counts messages sent by the user across all threads
	// within the trailing window, for the dispatch rate limit.
	CountSince(ctx context.Context, senderID uuid.UUID, window time.Duration) (int, error)
}

type messageRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewMessageRepository(db *pgxpool.Pool, log logger.Logger) MessageRepository {
	return &messageRepository{db: db, log: log}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (id, thread_id, sender_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		message.ID, message.ThreadID, message.SenderID, message.Body, message.CreatedAt,
	).Scan(&message.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create message", "error", err)
		return err
	}

	return nil
}

func (r *messageRepository) ListByThread(ctx context.Context, threadID uuid.UUID) ([]*domain.Message, error) {
	query := `
		SELECT id, thread_id, sender_id, body, created_at, read_at
		FROM messages
		WHERE thread_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, threadID)
	if err != nil {
		r.log.Error("Failed to list messages", "error", err)
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			r.log.Error("Failed to scan message", "error", err)
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

func (r *messageRepository) LastInThread(ctx context.Context, threadID uuid.UUID) (*domain.Message, error) {
	query := `
		SELECT id, thread_id, sender_id, body, created_at, read_at
		FROM messages
		WHERE thread_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	message, err := scanMessage(r.db.QueryRow(ctx, query, threadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to get last message", "error", err)
		return nil, err
	}

	return message, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, threadID, readerID uuid.UUID) error {
	query := `
		UPDATE messages
		SET read_at = $3
		WHERE thread_id = $1 AND sender_id <> $2 AND read_at IS NULL
	`

	_, err := r.db.Exec(ctx, query, threadID, readerID, time.Now())
	if err != nil {
		r.log.Error("Failed to mark messages read", "error", err)
		return err
	}

	return nil
}

func (r *messageRepository) CountSince(ctx context.Context, senderID uuid.UUID, window time.Duration) (int, error) {
	query := `SELECT COUNT(*) FROM messages WHERE sender_id = $1 AND created_at > $2`

	var count int
	err := r.db.QueryRow(ctx, query, senderID, time.Now().Add(-window)).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count recent messages", "error", err)
		return 0, err
	}

	return count, nil
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	message := &domain.Message{}
	var readAt sql.NullTime

	err := row.Scan(
		&message.ID, &message.ThreadID, &message.SenderID, &message.Body,
		&message.CreatedAt, &readAt,
	)
	if err != nil {
		return nil, err
	}

	if readAt.Valid {
		message.ReadAt = &readAt.Time
	}

	return message, nil
}
