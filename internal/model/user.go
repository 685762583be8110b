package model

import (
	"strings"
	"time"
)

// Role is the closed set of account roles.  Free-form role strings from the
// outside world (registration payloads, token claims) are converted through
// ParseRole at the trust boundary so the rest of the code never does
// case-insensitive string comparison.
type Role string

const (
	RoleAdmin   Role = "admin"   // full access, including user/catalogue management
	RoleCashier Role = "cashier" // point-of-sale access: orders, transactions, stocks
)

// ParseRole normalizes a raw role string into a Role.  Matching is
// case-insensitive; unknown values are rejected.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin, true
	case string(RoleCashier):
		return RoleCashier, true
	}
	return "", false
}

// User represents an application user record as stored in the `users`
// table.  The password hash is never serialized into responses.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	FullName     – display name.
//	Username     – unique login name.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password.
//	Role         – account role (admin or cashier).
//	IsActive     – whether the account is active; disabled accounts are
//	               rejected by the authorization middleware on every request.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`
	FullName     string    `json:"fullname"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TokenPair models the single row in the `tokens` table owned by each
// logged-in user.  A new login replaces the previous pair atomically and
// logout deletes it.
type TokenPair struct {
	ID           uint64    `json:"id"`
	UserID       uint64    `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	CreatedAt    time.Time `json:"created_at"`
}
