package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"roomshare/internal/domain"
	"roomshare/pkg/apperr"
	"roomshare/pkg/logger"
)

type RequestRepository interface {
	Create(ctx context.Context, request *domain.RoomRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RoomRequest, error)
	List(ctx context.Context, limit, offset int) ([]*domain.RoomRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type requestRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewRequestRepository(db *pgxpool.Pool, log logger.Logger) RequestRepository {
	return &requestRepository{db: db, log: log}
}

func (r *requestRepository) Create(ctx context.Context, request *domain.RoomRequest) error {
	query := `
		INSERT INTO room_requests (id, user_id, title, body, prefecture, city, budget_yen, move_in_month, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		request.ID, request.UserID, request.Title, request.Body, request.Prefecture,
		request.City, request.BudgetYen, request.MoveInMonth, request.CreatedAt,
	).Scan(&request.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create room request", "error", err)
		return err
	}

	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RoomRequest, error) {
	query := `
		SELECT id, user_id, title, body, prefecture, city, budget_yen, move_in_month, created_at
		FROM room_requests
		WHERE id = $1
	`

	request, err := scanRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		r.log.Error("Failed to get room request", "error", err)
		return nil, err
	}

	return request, nil
}

func (r *requestRepository) List(ctx context.Context, limit, offset int) ([]*domain.RoomRequest, error) {
	query := `
		SELECT id, user_id, title, body, prefecture, city, budget_yen, move_in_month, created_at
		FROM room_requests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list room requests", "error", err)
		return nil, err
	}
	defer rows.Close()

	var requests []*domain.RoomRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			r.log.Error("Failed to scan room request", "error", err)
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

func (r *requestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM room_requests WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete room request", "error", err)
		return err
	}

	return nil
}

func scanRequest(row pgx.Row) (*domain.RoomRequest, error) {
	request := &domain.RoomRequest{}
	var budget sql.NullInt32
	var moveIn sql.NullString

	err := row.Scan(
		&request.ID, &request.UserID, &request.Title, &request.Body, &request.Prefecture,
		&request.City, &budget, &moveIn, &request.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if budget.Valid {
		v := int(budget.Int32)
		request.BudgetYen = &v
	}
	if moveIn.Valid {
		request.MoveInMonth = &moveIn.String
	}

	return request, nil
}
