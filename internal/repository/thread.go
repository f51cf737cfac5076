package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"roomshare/internal/domain"
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
)

type ThreadRepository interface {
	// FindOrCreate is idempotent under concurrent first contacts: the
	// composite unique index on (content_type, content_id, seeker_id,
	// host_id) turns a lost insert race into a fetch of the winner's row.
	FindOrCreate(ctx context.Context, thread *domain.Thread) (*domain.Thread, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Thread, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Thread, error)
	Touch(ctx context.Context, id uuid.UUID) error
}

type threadRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewThreadRepository(db *pgxpool.Pool, log logger.Logger) ThreadRepository {
	return &threadRepository{db: db, log: log}
}

const threadColumns = `id, content_type, content_id, host_id, seeker_id, last_activity_at, created_at`

func (r *threadRepository) FindOrCreate(ctx context.Context, thread *domain.Thread) (*domain.Thread, error) {
	query := `
		INSERT INTO threads (id, content_type, content_id, host_id, seeker_id, last_activity_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (content_type, content_id, seeker_id, host_id) DO NOTHING
		RETURNING id, last_activity_at, created_at
	`

	err := r.db.QueryRow(ctx, query,
		thread.ID, thread.ContentType, thread.ContentID, thread.HostID, thread.SeekerID,
		thread.LastActivityAt, thread.CreatedAt,
	).Scan(&thread.ID, &thread.LastActivityAt, &thread.CreatedAt)

	if err == nil {
		return thread, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.log.Error("Failed to create thread", "error", err)
		return nil, err
	}

	// Conflict: another contact already created this thread, return it.
	return r.getByKey(ctx, thread.ContentType, thread.ContentID, thread.SeekerID, thread.HostID)
}

func (r *threadRepository) getByKey(ctx context.Context, contentType string, contentID, seekerID, hostID uuid.UUID) (*domain.Thread, error) {
	query := `
		SELECT ` + threadColumns + `
		FROM threads
		WHERE content_type = $1 AND content_id = $2 AND seeker_id = $3 AND host_id = $4
	`

	thread := &domain.Thread{}
	err := r.db.QueryRow(ctx, query, contentType, contentID, seekerID, hostID).Scan(
		&thread.ID, &thread.ContentType, &thread.ContentID, &thread.HostID, &thread.SeekerID,
		&thread.LastActivityAt, &thread.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrThreadNotFound
		}
		r.log.Error("Failed to get thread by key", "error", err)
		return nil, err
	}

	return thread, nil
}

func (r *threadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
	query := `SELECT ` + threadColumns + ` FROM threads WHERE id = $1`

	thread := &domain.Thread{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&thread.ID, &thread.ContentType, &thread.ContentID, &thread.HostID, &thread.SeekerID,
		&thread.LastActivityAt, &thread.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrThreadNotFound
		}
		r.log.Error("Failed to get thread by ID", "error", err)
		return nil, err
	}

	return thread, nil
}

func (r *threadRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Thread, error) {
	query := `
		SELECT ` + threadColumns + `
		FROM threads
		WHERE host_id = $1 OR seeker_id = $1
		ORDER BY last_activity_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list threads", "error", err)
		return nil, err
	}
	defer rows.Close()

	var threads []*domain.Thread
	for rows.Next() {
		thread := &domain.Thread{}
		err := rows.Scan(
			&thread.ID, &thread.ContentType, &thread.ContentID, &thread.HostID, &thread.SeekerID,
			&thread.LastActivityAt, &thread.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan thread", "error", err)
			return nil, err
		}
		threads = append(threads, thread)
	}

	return threads, rows.Err()
}

func (r *threadRepository) Touch(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE threads SET last_activity_at = $2 WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, time.Now())
	if err != nil {
		r.log.Error("Failed to touch thread", "error", err)
		return err
	}

	return nil
}
