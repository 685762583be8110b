package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/FINZ1-ops/shop-api/internal/auth"
	"github.com/FINZ1-ops/shop-api/internal/middleware"
	"github.com/FINZ1-ops/shop-api/internal/model"
	"github.com/FINZ1-ops/shop-api/internal/repository"
	"github.com/FINZ1-ops/shop-api/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Tokens     *auth.Service
	Users      *repository.UserRepo
	Pairs      *repository.TokenRepo
	BcryptCost int
}

func NewAuthHandler(tokens *auth.Service, u *repository.UserRepo, p *repository.TokenRepo, bcryptCost int) *AuthHandler {
	return &AuthHandler{Tokens: tokens, Users: u, Pairs: p, BcryptCost: bcryptCost}
}

// ----- DTOs -----

type registerReq struct {
	FullName string `json:"fullname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type authResp struct {
	User         model.User `json:"user"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
}

// Register creates a user account.  All five fields are required; the role
// must be one of the known roles; duplicate username or email is rejected.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.FullName == "" || req.Username == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return fail(c, http.StatusBadRequest, "fullname, username, email, password and role are required")
	}
	role, ok := model.ParseRole(req.Role)
	if !ok {
		return fail(c, http.StatusBadRequest, "unknown role")
	}

	hash, err := utils.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not create user")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u := model.User{
		FullName:     req.FullName,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	uid, err := h.Users.Create(ctx, &u)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return fail(c, http.StatusBadRequest, "username or email already exists")
		}
		return fail(c, http.StatusInternalServerError, "could not create user")
	}
	u.ID = uid
	return respondMsg(c, http.StatusCreated, "user registered", u)
}

// Login verifies credentials and issues a fresh token pair, replacing any
// previous pair for the user.  Admin accounts receive a non-expiring access
// token; everyone else gets the configured lifetime.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "user not found")
		}
		return fail(c, http.StatusInternalServerError, "login failed")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "invalid credentials")
	}

	access, err := h.Tokens.NewAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "login failed")
	}
	refresh, err := h.Tokens.NewRefreshToken(u.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "login failed")
	}
	if err := h.Pairs.ReplacePair(ctx, u.ID, access, refresh); err != nil {
		return fail(c, http.StatusInternalServerError, "login failed")
	}

	return respond(c, http.StatusOK, authResp{
		User:         u,
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// Refresh exchanges a valid refresh token for a new access token.  The
// token must verify against the refresh secret AND match the pair stored
// for its user; the stored access token is swapped for the new one.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return fail(c, http.StatusBadRequest, "refresh_token required")
	}
	raw := strings.TrimSpace(req.RefreshToken)

	claims, err := h.Tokens.ParseRefresh(raw)
	if err != nil {
		msg := "invalid refresh token"
		if errors.Is(err, auth.ErrExpired) {
			msg = "refresh token expired"
		}
		return fail(c, http.StatusUnauthorized, msg)
	}
	uid, err := auth.ParseID(claims.Subject)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "invalid refresh token")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pair, err := h.Pairs.GetByUser(ctx, uid)
	if err != nil || pair.RefreshToken != raw {
		// Token signed correctly but no longer the live pair (logged out or
		// replaced by a newer login).
		return fail(c, http.StatusUnauthorized, "invalid refresh token")
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "invalid refresh token")
	}
	access, err := h.Tokens.NewAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "refresh failed")
	}
	if err := h.Pairs.UpdateAccess(ctx, u.ID, access); err != nil {
		return fail(c, http.StatusInternalServerError, "refresh failed")
	}

	return respond(c, http.StatusOK, echo.Map{"access_token": access})
}

// Logout deletes the token pair of the authenticated caller.  The identity
// comes from the verified token, never from the request body.  Idempotent:
// logging out twice succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Pairs.DeleteForUser(ctx, uid); err != nil {
		return fail(c, http.StatusInternalServerError, "logout failed")
	}
	return respondMsg(c, http.StatusOK, "logged out", nil)
}

// Me returns the authenticated caller's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "user not found")
		}
		return fail(c, http.StatusInternalServerError, "lookup failed")
	}
	return respond(c, http.StatusOK, u)
}
