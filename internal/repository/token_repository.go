package repository

import (
	"context"
	"database/sql"

	"github.com/FINZ1-ops/shop-api/internal/model"
)

// TokenRepo persists the per-user token pair in the 'tokens' table.  The
// table carries a unique index on user_id: a user owns at most one live
// pair at any time.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// ReplacePair deletes any existing pair for the user and inserts the new
// one inside a single transaction, so a crash can never leave the user
// between pairs while a token is already circulating.
func (r *TokenRepo) ReplacePair(ctx context.Context, userID uint64, access, refresh string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tokens WHERE user_id=?", userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO tokens (user_id, access_token, refresh_token) VALUES (?,?,?)",
		userID, access, refresh); err != nil {
		return err
	}
	return tx.Commit()
}

// GetByUser returns the stored pair for a user.
func (r *TokenRepo) GetByUser(ctx context.Context, userID uint64) (model.TokenPair, error) {
	var p model.TokenPair
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, access_token, refresh_token, created_at FROM tokens WHERE user_id=? LIMIT 1",
		userID).Scan(&p.ID, &p.UserID, &p.AccessToken, &p.RefreshToken, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	return p, err
}

// UpdateAccess swaps the stored access token after a refresh.
func (r *TokenRepo) UpdateAccess(ctx context.Context, userID uint64, access string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE tokens SET access_token=? WHERE user_id=?", access, userID)
	return err
}

// DeleteForUser removes the user's pair.  Deleting a pair that does not
// exist is not an error; logout is idempotent.
func (r *TokenRepo) DeleteForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM tokens WHERE user_id=?", userID)
	return err
}
