package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FINZ1-ops/shop-api/internal/model"
)

func newTestService(ttl time.Duration) *Service {
	return NewService(Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     ttl,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	tok, err := svc.NewAccessToken(7, "c@shop.test", model.RoleCashier)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	claims, err := svc.ParseAccess(tok)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.Email != "c@shop.test" || claims.Role != model.RoleCashier {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	uid, err := ParseID(claims.Subject)
	if err != nil || uid != 7 {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
	if claims.ExpiresAt == nil {
		t.Fatalf("cashier token must carry an expiry")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 14*time.Minute || ttl > 16*time.Minute {
		t.Fatalf("unexpected ttl: %v", ttl)
	}
}

func TestAdminTokenHasNoExpiry(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	tok, err := svc.NewAccessToken(1, "a@shop.test", model.RoleAdmin)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	claims, err := svc.ParseAccess(tok)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.ExpiresAt != nil {
		t.Fatalf("admin token must not carry an exp claim, got %v", claims.ExpiresAt)
	}

	// The raw claim set must not contain exp at all.
	parsed, _, err := jwt.NewParser().ParseUnverified(tok, jwt.MapClaims{})
	if err != nil {
		t.Fatalf("unverified parse: %v", err)
	}
	if _, ok := parsed.Claims.(jwt.MapClaims)["exp"]; ok {
		t.Fatalf("exp claim present in admin token")
	}
}

func TestExpiredDistinctFromInvalid(t *testing.T) {
	svc := newTestService(-time.Minute) // already expired at issuance

	tok, err := svc.NewAccessToken(2, "x@shop.test", model.RoleCashier)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := svc.ParseAccess(tok); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}

	// Flip a character inside the signature.
	tampered := tok[:len(tok)-2] + "zz"
	if _, err := svc.ParseAccess(tampered); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for tampered token, got %v", err)
	}

	if _, err := svc.ParseAccess("not-a-token"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for garbage, got %v", err)
	}
}

func TestRefreshTokenUsesDistinctSecret(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	refresh, err := svc.NewRefreshToken(3)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	claims, err := svc.ParseRefresh(refresh)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if uid, err := ParseID(claims.Subject); err != nil || uid != 3 {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 7*24*time.Hour-time.Minute || ttl > 7*24*time.Hour+time.Minute {
		t.Fatalf("unexpected refresh ttl: %v", ttl)
	}

	// A refresh token must never verify as an access token and vice versa.
	if _, err := svc.ParseAccess(refresh); !errors.Is(err, ErrInvalid) {
		t.Fatalf("refresh token accepted as access token")
	}
	access, err := svc.NewAccessToken(3, "r@shop.test", model.RoleCashier)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := svc.ParseRefresh(access); !errors.Is(err, ErrInvalid) {
		t.Fatalf("access token accepted as refresh token")
	}
}
