package repository

import (
	"context"
	"errors"

	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/jmoiron/sqlx"
)

// ErrAlreadyRated is returned when a user submits a second rated visit
// for the same box. Comment-only rows are never deduplicated.
var ErrAlreadyRated = errors.New("box already rated by user")

type VisitRepository interface {
	// Create appends a visit row. For rated visits the one-rating-per-box
	// check and the canonical-visit limit check run in the same
	// transaction as the insert. Unrated rows are not gated.
	Create(ctx context.Context, visit *model.Visit, limit int) error
	ListForBox(ctx context.Context, boxID string) ([]*model.Visit, error)
	ByUser(ctx context.Context, userID string) ([]*model.Visit, error)
	HasCanonical(ctx context.Context, userID, boxID string) (bool, error)
	CountCanonicalByUser(ctx context.Context, userID string) (int, error)
}

type visitRepository struct {
	db *sqlx.DB
}

func NewVisitRepository(db *sqlx.DB) VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) Create(ctx context.Context, visit *model.Visit, limit int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	if visit.Rating != nil {
		var rated int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM visits WHERE user_id = $1 AND box_id = $2 AND rating IS NOT NULL`,
			visit.UserID, visit.BoxID,
		).Scan(&rated)
		if err != nil {
			return classify(err)
		}
		if rated > 0 {
			return ErrAlreadyRated
		}

		if limit >= 0 {
			var canonical int
			err = tx.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM visits WHERE user_id = $1 AND rating IS NOT NULL`,
				visit.UserID,
			).Scan(&canonical)
			if err != nil {
				return classify(err)
			}
			if canonical >= limit {
				return ErrLimitReached
			}
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO visits (id, user_id, box_id, rating, comment, visited_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		visit.ID,
		visit.UserID,
		visit.BoxID,
		visit.Rating,
		visit.Comment,
		visit.VisitedAt,
	)
	if err != nil {
		return classify(err)
	}

	return classify(tx.Commit())
}

// ListForBox returns the review feed, most recent first. Visit ids are
// UUIDv7, so the id tiebreak keeps insertion order for rows sharing a
// timestamp.
func (r *visitRepository) ListForBox(ctx context.Context, boxID string) ([]*model.Visit, error) {
	var visits []*model.Visit
	query := `SELECT v.id, v.user_id, v.box_id, v.rating, v.comment, v.visited_at,
	                 u.username AS visitor_username, u.avatar_path AS visitor_avatar_path
	          FROM visits v
	          JOIN users u ON u.id = v.user_id
	          WHERE v.box_id = $1
	          ORDER BY v.visited_at DESC, v.id ASC`

	err := r.db.SelectContext(ctx, &visits, query, boxID)
	if err != nil {
		return nil, classify(err)
	}

	return visits, nil
}

func (r *visitRepository) ByUser(ctx context.Context, userID string) ([]*model.Visit, error) {
	var visits []*model.Visit
	query := `SELECT v.id, v.user_id, v.box_id, v.rating, v.comment, v.visited_at,
	                 b.name AS box_name
	          FROM visits v
	          JOIN boxes b ON b.id = v.box_id
	          WHERE v.user_id = $1
	          ORDER BY v.visited_at DESC, v.id ASC`

	err := r.db.SelectContext(ctx, &visits, query, userID)
	if err != nil {
		return nil, classify(err)
	}

	return visits, nil
}

func (r *visitRepository) HasCanonical(ctx context.Context, userID, boxID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM visits WHERE user_id = $1 AND box_id = $2 AND rating IS NOT NULL`
	err := r.db.QueryRowContext(ctx, query, userID, boxID).Scan(&count)
	return count > 0, classify(err)
}

func (r *visitRepository) CountCanonicalByUser(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM visits WHERE user_id = $1 AND rating IS NOT NULL`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, classify(err)
}
