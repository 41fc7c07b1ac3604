package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TokenRepository interface {
	Create(ctx context.Context, token *model.Token) error
	Consume(ctx context.Context, token string) (*model.Token, error)
	DeleteByUserAndType(ctx context.Context, userID, tokenType string) error
}

type tokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *model.Token) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}

	query := `INSERT INTO tokens (id, user_id, type, token, expires_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		token.ID,
		token.UserID,
		token.Type,
		token.Token,
		token.ExpiresAt,
		token.CreatedAt,
	)
	return classify(err)
}

// Consume atomically marks the token used and returns it. The single
// UPDATE ... RETURNING means a token can only ever be consumed once,
// even under concurrent requests.
func (r *tokenRepository) Consume(ctx context.Context, token string) (*model.Token, error) {
	var t model.Token
	now := time.Now()

	query := `UPDATE tokens
	          SET used_at = $1
	          WHERE token = $2 AND used_at IS NULL AND expires_at > $3
	          RETURNING *`

	err := r.db.GetContext(ctx, &t, query, now, token, now)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, classify(err)
	}

	return &t, nil
}

func (r *tokenRepository) DeleteByUserAndType(ctx context.Context, userID, tokenType string) error {
	query := `DELETE FROM tokens WHERE user_id = $1 AND type = $2 AND used_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, userID, tokenType)
	return classify(err)
}
