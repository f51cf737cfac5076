package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"roomshare/internal/domain"
	"roomshare/internal/search"
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
)

type ListingRepository interface {
	Search(ctx context.Context, compiled search.Compiled, limit, offset int) ([]*domain.Listing, error)
	Count(ctx context.Context, compiled search.Compiled) (int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	Create(ctx context.Context, listing *domain.Listing) error
	Update(ctx context.Context, listing *domain.Listing) error
	SetVisibility(ctx context.Context, id uuid.UUID, public bool) error
	SetSlug(ctx context.Context, id uuid.UUID, slug string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type listingRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewListingRepository(db *pgxpool.Pool, log logger.Logger) ListingRepository {
	return &listingRepository{db: db, log: log}
}

const listingColumns = `id, owner_id, title, description, price, prefecture, city, address,
	       station_line, station_name, walk_minutes, room_type, gender_restriction,
	       amenities, image_urls, is_public, slug, created_at, updated_at`

func (r *listingRepository) Search(ctx context.Context, compiled search.Compiled, limit, offset int) ([]*domain.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM listings
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, listingColumns, compiled.Where, len(compiled.Args)+1, len(compiled.Args)+2)

	args := append(append([]any{}, compiled.Args...), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to search listings", "error", err)
		return nil, err
	}
	defer rows.Close()

	var listings []*domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			r.log.Error("Failed to scan listing", "error", err)
			return nil, err
		}
		listings = append(listings, listing)
	}

	return listings, rows.Err()
}

func (r *listingRepository) Count(ctx context.Context, compiled search.Compiled) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM listings WHERE %s`, compiled.Where)

	var count int
	if err := r.db.QueryRow(ctx, query, compiled.Args...).Scan(&count); err != nil {
		r.log.Error("Failed to count listings", "error", err)
		return 0, err
	}

	return count, nil
}

func (r *listingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE id = $1`, listingColumns)

	listing, err := scanListing(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrListingNotFound
		}
		r.log.Error("Failed to get listing by ID", "error", err)
		return nil, err
	}

	return listing, nil
}

func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	query := `
		INSERT INTO listings (id, owner_id, title, description, price, prefecture, city, address,
		                     station_line, station_name, walk_minutes, room_type, gender_restriction,
		                     amenities, image_urls, is_public, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		listing.ID, listing.OwnerID, listing.Title, listing.Description, listing.Price,
		listing.Prefecture, listing.City, listing.Address, listing.StationLine, listing.StationName,
		listing.WalkMinutes, listing.RoomType, listing.GenderRestriction, listing.Amenities,
		listing.ImageURLs, listing.IsPublic, listing.Slug, listing.CreatedAt, listing.UpdatedAt,
	).Scan(&listing.CreatedAt, &listing.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create listing", "error", err)
		return err
	}

	return nil
}

func (r *listingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	query := `
		UPDATE listings
		SET title = $2, description = $3, price = $4, prefecture = $5, city = $6, address = $7,
		    station_line = $8, station_name = $9, walk_minutes = $10, room_type = $11,
		    gender_restriction = $12, amenities = $13, image_urls = $14, slug = $15, updated_at = $16
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		listing.ID, listing.Title, listing.Description, listing.Price, listing.Prefecture,
		listing.City, listing.Address, listing.StationLine, listing.StationName, listing.WalkMinutes,
		listing.RoomType, listing.GenderRestriction, listing.Amenities, listing.ImageURLs,
		listing.Slug, time.Now(),
	).Scan(&listing.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.ErrListingNotFound
		}
		r.log.Error("Failed to update listing", "error", err)
		return err
	}

	return nil
}

func (r *listingRepository) SetVisibility(ctx context.Context, id uuid.UUID, public bool) error {
	query := `UPDATE listings SET is_public = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, public, time.Now())
	if err != nil {
		r.log.Error("Failed to set listing visibility", "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrListingNotFound
	}

	return nil
}

func (r *listingRepository) SetSlug(ctx context.Context, id uuid.UUID, slug string) error {
	query := `UPDATE listings SET slug = $2 WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, slug)
	if err != nil {
		r.log.Error("Failed to set listing slug", "error", err)
		return err
	}

	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM listings WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete listing", "error", err)
		return err
	}

	return nil
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	listing := &domain.Listing{}
	var walkMinutes sql.NullInt32
	var slug sql.NullString

	err := row.Scan(
		&listing.ID, &listing.OwnerID, &listing.Title, &listing.Description, &listing.Price,
		&listing.Prefecture, &listing.City, &listing.Address, &listing.StationLine,
		&listing.StationName, &walkMinutes, &listing.RoomType, &listing.GenderRestriction,
		&listing.Amenities, &listing.ImageURLs, &listing.IsPublic, &slug,
		&listing.CreatedAt, &listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if walkMinutes.Valid {
		v := int(walkMinutes.Int32)
		listing.WalkMinutes = &v
	}
	listing.Slug = slug.String

	return listing, nil
}
