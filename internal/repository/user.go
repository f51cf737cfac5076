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
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// Upsert inserts the profile on first save and updates it after.
	Upsert(ctx context.Context, user *domain.User) error
	// GetAuthRecord reads the authentication provider's row directly.
	// Used only as the email fallback when a profile carries no address.
	GetAuthRecord(ctx context.Context, id uuid.UUID) (*domain.AuthRecord, error)
}

type userRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewUserRepository(db *pgxpool.Pool, log logger.Logger) UserRepository {
	return &userRepository{db: db, log: log}
}

const userColumns = `id, email, display_name, photo_url, gender, age, occupation,
	       email_notifications, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM profiles WHERE id = $1`

	user := &domain.User{}
	var photoURL, occupation sql.NullString
	var age sql.NullInt32

	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.DisplayName, &photoURL, &user.Gender, &age,
		&occupation, &user.EmailNotifications, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrUserNotFound
		}
		r.log.Error("Failed to get user", "error", err)
		return nil, err
	}

	if photoURL.Valid {
		user.PhotoURL = &photoURL.String
	}
	if occupation.Valid {
		user.Occupation = &occupation.String
	}
	if age.Valid {
		v := int(age.Int32)
		user.Age = &v
	}

	return user, nil
}

func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO profiles (id, email, display_name, photo_url, gender, age,
		                      occupation, email_notifications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (id) DO UPDATE
		SET email = $2, display_name = $3, photo_url = $4, gender = $5, age = $6,
		    occupation = $7, email_notifications = $8, updated_at = $9
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.DisplayName, user.PhotoURL, user.Gender, user.Age,
		user.Occupation, user.EmailNotifications, time.Now(),
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to upsert user", "error", err)
		return err
	}

	return nil
}

func (r *userRepository) GetAuthRecord(ctx context.Context, id uuid.UUID) (*domain.AuthRecord, error) {
	query := `SELECT id, email FROM auth_users WHERE id = $1`

	record := &domain.AuthRecord{}
	err := r.db.QueryRow(ctx, query, id).Scan(&record.ID, &record.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrUserNotFound
		}
		r.log.Error("Failed to get auth record", "error", err)
		return nil, err
	}

	return record, nil
}
