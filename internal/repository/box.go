package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/jmoiron/sqlx"
)

type BoxRepository interface {
	Create(ctx context.Context, box *model.Box) error
	CreateWithinLimit(ctx context.Context, box *model.Box, limit int) error
	ByID(ctx context.Context, id string) (*model.Box, error)
	All(ctx context.Context) ([]*model.Box, error)
	Search(ctx context.Context, query string) ([]*model.Box, error)
	ByCreator(ctx context.Context, creatorID string) ([]*model.Box, error)
	CountByCreator(ctx context.Context, creatorID string) (int, error)
	UpdateImage(ctx context.Context, boxID string, imagePath *string) error
	Delete(ctx context.Context, boxID string) error
}

type boxRepository struct {
	db *sqlx.DB
}

func NewBoxRepository(db *sqlx.DB) BoxRepository {
	return &boxRepository{db: db}
}

const boxColumns = `id, name, description, latitude, longitude, image_path, creator_id, creator_username, created_at`

func (r *boxRepository) Create(ctx context.Context, box *model.Box) error {
	query := `INSERT INTO boxes (` + boxColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		box.ID,
		box.Name,
		box.Description,
		box.Latitude,
		box.Longitude,
		box.ImagePath,
		box.CreatorID,
		box.CreatorUsername,
		box.CreatedAt,
	)

	return classify(err)
}

// CreateWithinLimit inserts the box only if the creator currently owns
// fewer than limit boxes. Count and insert run as a single statement, so
// two concurrent submissions cannot both slip under the limit. Returns
// ErrLimitReached when the condition fails.
func (r *boxRepository) CreateWithinLimit(ctx context.Context, box *model.Box, limit int) error {
	query := `INSERT INTO boxes (` + boxColumns + `)
	          SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9
	          WHERE (SELECT COUNT(*) FROM boxes WHERE creator_id = $7) < $10`

	result, err := r.db.ExecContext(ctx, query,
		box.ID,
		box.Name,
		box.Description,
		box.Latitude,
		box.Longitude,
		box.ImagePath,
		box.CreatorID,
		box.CreatorUsername,
		box.CreatedAt,
		limit,
	)
	if err != nil {
		return classify(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrLimitReached
	}

	return nil
}

func (r *boxRepository) ByID(ctx context.Context, id string) (*model.Box, error) {
	box := &model.Box{}
	query := `SELECT * FROM boxes WHERE id = $1`

	err := r.db.GetContext(ctx, box, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBoxNotFound
	}

	return box, classify(err)
}

func (r *boxRepository) All(ctx context.Context) ([]*model.Box, error) {
	var boxes []*model.Box
	query := `SELECT * FROM boxes ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &boxes, query)
	if err != nil {
		return nil, classify(err)
	}

	return boxes, nil
}

func (r *boxRepository) Search(ctx context.Context, search string) ([]*model.Box, error) {
	var boxes []*model.Box
	query := `SELECT * FROM boxes
	          WHERE name LIKE '%' || $1 || '%' OR description LIKE '%' || $1 || '%'
	          ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &boxes, query, search)
	if err != nil {
		return nil, classify(err)
	}

	return boxes, nil
}

func (r *boxRepository) ByCreator(ctx context.Context, creatorID string) ([]*model.Box, error) {
	var boxes []*model.Box
	query := `SELECT * FROM boxes WHERE creator_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &boxes, query, creatorID)
	if err != nil {
		return nil, classify(err)
	}

	return boxes, nil
}

func (r *boxRepository) CountByCreator(ctx context.Context, creatorID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM boxes WHERE creator_id = $1`
	err := r.db.QueryRowContext(ctx, query, creatorID).Scan(&count)
	return count, classify(err)
}

func (r *boxRepository) UpdateImage(ctx context.Context, boxID string, imagePath *string) error {
	query := `UPDATE boxes SET image_path = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, imagePath, boxID)
	if err != nil {
		return classify(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrBoxNotFound
	}

	return nil
}

// Delete removes the box row. Favorites and visits referencing it go
// with it via ON DELETE CASCADE, atomically with the delete, so counts
// never see orphaned rows. Ownership is checked by the service.
func (r *boxRepository) Delete(ctx context.Context, boxID string) error {
	query := `DELETE FROM boxes WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, boxID)
	if err != nil {
		return classify(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrBoxNotFound
	}

	return nil
}
