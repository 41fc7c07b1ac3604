package repository

import (
	"context"
	"time"

	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/jmoiron/sqlx"
)

type FavoriteRepository interface {
	// Toggle flips the favorite for the pair and reports which direction
	// it went. The add direction is gated by limit (Unlimited disables
	// the gate); removal is never gated.
	Toggle(ctx context.Context, userID, boxID string, limit int) (string, error)
	// Set is the idempotent variant for retried requests: setting an
	// already-set favorite is a no-op, clearing an absent one too.
	Set(ctx context.Context, userID, boxID string, want bool, limit int) (string, error)
	Exists(ctx context.Context, userID, boxID string) (bool, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	BoxesByUser(ctx context.Context, userID string) ([]*model.Box, error)
}

type favoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

const favoriteInsert = `INSERT INTO favorites (user_id, box_id, created_at)
	SELECT $1, $2, $3
	WHERE $4 < 0 OR (SELECT COUNT(*) FROM favorites WHERE user_id = $1) < $4
	ON CONFLICT (user_id, box_id) DO NOTHING`

func (r *favoriteRepository) Toggle(ctx context.Context, userID, boxID string, limit int) (string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1 AND box_id = $2`, userID, boxID)
	if err != nil {
		return "", classify(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return "", err
	}
	if rows > 0 {
		return model.FavoriteRemoved, classify(tx.Commit())
	}

	result, err = tx.ExecContext(ctx, favoriteInsert, userID, boxID, time.Now(), limit)
	if err != nil {
		return "", classify(err)
	}
	rows, err = result.RowsAffected()
	if err != nil {
		return "", err
	}
	if rows == 0 {
		return "", ErrLimitReached
	}

	return model.FavoriteAdded, classify(tx.Commit())
}

func (r *favoriteRepository) Set(ctx context.Context, userID, boxID string, want bool, limit int) (string, error) {
	if !want {
		_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1 AND box_id = $2`, userID, boxID)
		if err != nil {
			return "", classify(err)
		}
		return model.FavoriteRemoved, nil
	}

	result, err := r.db.ExecContext(ctx, favoriteInsert, userID, boxID, time.Now(), limit)
	if err != nil {
		return "", classify(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return "", err
	}
	if rows == 0 {
		// Either the row already exists (retry of a successful add) or
		// the limit condition failed. An existing row means success.
		exists, err := r.Exists(ctx, userID, boxID)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", ErrLimitReached
		}
	}

	return model.FavoriteAdded, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, boxID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM favorites WHERE user_id = $1 AND box_id = $2`
	err := r.db.QueryRowContext(ctx, query, userID, boxID).Scan(&count)
	return count > 0, classify(err)
}

func (r *favoriteRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM favorites WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, classify(err)
}

func (r *favoriteRepository) BoxesByUser(ctx context.Context, userID string) ([]*model.Box, error) {
	var boxes []*model.Box
	query := `SELECT b.* FROM boxes b
	          JOIN favorites f ON f.box_id = b.id
	          WHERE f.user_id = $1
	          ORDER BY f.created_at DESC`

	err := r.db.SelectContext(ctx, &boxes, query, userID)
	if err != nil {
		return nil, classify(err)
	}

	return boxes, nil
}
