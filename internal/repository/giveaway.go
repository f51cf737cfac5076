package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"roomshare/internal/domain"
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
)

type GiveawayRepository interface {
	Create(ctx context.Context, giveaway *domain.Giveaway) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Giveaway, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Giveaway, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type giveawayRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewGiveawayRepository(db *pgxpool.Pool, log logger.Logger) GiveawayRepository {
	return &giveawayRepository{db: db, log: log}
}

func (r *giveawayRepository) Create(ctx context.Context, giveaway *domain.Giveaway) error {
	query := `
		INSERT INTO giveaways (id, user_id, title, description, image_urls, prefecture, city, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		giveaway.ID, giveaway.UserID, giveaway.Title, giveaway.Description, giveaway.ImageURLs,
		giveaway.Prefecture, giveaway.City, giveaway.Status, giveaway.CreatedAt,
	).Scan(&giveaway.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create giveaway", "error", err)
		return err
	}

	return nil
}

func (r *giveawayRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Giveaway, error) {
	query := `
		SELECT id, user_id, title, description, image_urls, prefecture, city, status, created_at
		FROM giveaways
		WHERE id = $1
	`

	giveaway := &domain.Giveaway{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&giveaway.ID, &giveaway.UserID, &giveaway.Title, &giveaway.Description,
		&giveaway.ImageURLs, &giveaway.Prefecture, &giveaway.City, &giveaway.Status,
		&giveaway.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		r.log.Error("Failed to get giveaway", "error", err)
		return nil, err
	}

	return giveaway, nil
}

func (r *giveawayRepository) List(ctx context.Context, limit, offset int) ([]*domain.Giveaway, error) {
	query := `
		SELECT id, user_id, title, description, image_urls, prefecture, city, status, created_at
		FROM giveaways
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, domain.GiveawayStatusOpen, limit, offset)
	if err != nil {
		r.log.Error("Failed to list giveaways", "error", err)
		return nil, err
	}
	defer rows.Close()

	var giveaways []*domain.Giveaway
	for rows.Next() {
		giveaway := &domain.Giveaway{}
		err := rows.Scan(
			&giveaway.ID, &giveaway.UserID, &giveaway.Title, &giveaway.Description,
			&giveaway.ImageURLs, &giveaway.Prefecture, &giveaway.City, &giveaway.Status,
			&giveaway.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan giveaway", "error", err)
			return nil, err
		}
		giveaways = append(giveaways, giveaway)
	}

	return giveaways, rows.Err()
}

func (r *giveawayRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE giveaways SET status = $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to set giveaway status", "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (r *giveawayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM giveaways WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete giveaway", "error", err)
		return err
	}

	return nil
}
