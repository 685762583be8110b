package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/FINZ1-ops/shop-api/internal/model"
)

const userColumns = "id,full_name,username,email,password_hash,role,is_active,created_at,updated_at"

// UserRepo provides data access to the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a new user and returns its ID.  The duplicate check and
// the insert run inside one transaction so two concurrent registrations
// with the same username or email cannot both succeed; the unique indexes
// on username and email back the check up at commit time.
func (r *UserRepo) Create(ctx context.Context, u *model.User) (uint64, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Username = strings.TrimSpace(u.Username)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username=? OR email=?",
		u.Username, u.Email).Scan(&n)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, ErrConflict
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (full_name, username, email, password_hash, role, is_active) VALUES (?,?,?,?,?,1)",
		u.FullName, u.Username, u.Email, u.PasswordHash, u.Role)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.get(ctx, "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.get(ctx, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

func (r *UserRepo) get(ctx context.Context, query string, arg any) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.FullName, &u.Username, &u.Email, &u.PasswordHash,
		&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// List returns all users ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &u.PasswordHash,
			&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// RoleStatus returns the current role and active flag for a user.  The
// authorization middleware calls this on every protected request so role
// changes and bans take effect immediately, regardless of what the token
// claims say.
func (r *UserRepo) RoleStatus(ctx context.Context, id uint64) (model.Role, bool, error) {
	var (
		role   model.Role
		active bool
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT role, is_active FROM users WHERE id=? LIMIT 1", id).Scan(&role, &active)
	if err == sql.ErrNoRows {
		return "", false, ErrNotFound
	}
	return role, active, err
}

// UserUpdate carries the optional fields of a partial user update.  Nil
// fields preserve the stored value.
type UserUpdate struct {
	FullName     *string
	Username     *string
	Email        *string
	PasswordHash *string
	Role         *model.Role
	IsActive     *bool
}

// Update applies a partial update to a user.  Returns ErrNotFound when the
// target row does not exist and ErrConflict when a new username or email
// collides with another account.
func (r *UserRepo) Update(ctx context.Context, id uint64, upd UserUpdate) error {
	var exists int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE id=?", id).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}

	sets := []string{}
	args := []any{}
	if upd.FullName != nil {
		sets, args = append(sets, "full_name=?"), append(args, *upd.FullName)
	}
	if upd.Username != nil {
		sets, args = append(sets, "username=?"), append(args, strings.TrimSpace(*upd.Username))
	}
	if upd.Email != nil {
		sets, args = append(sets, "email=?"), append(args, strings.ToLower(strings.TrimSpace(*upd.Email)))
	}
	if upd.PasswordHash != nil {
		sets, args = append(sets, "password_hash=?"), append(args, *upd.PasswordHash)
	}
	if upd.Role != nil {
		sets, args = append(sets, "role=?"), append(args, *upd.Role)
	}
	if upd.IsActive != nil {
		sets, args = append(sets, "is_active=?"), append(args, *upd.IsActive)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

// Delete removes a user row.  Returns ErrNotFound when no row was removed.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
