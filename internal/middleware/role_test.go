package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/FINZ1-ops/shop-api/internal/model"
)

// fakeRoleSource serves canned role/status lookups keyed by user id.
type fakeRoleSource struct {
	role   map[uint64]model.Role
	active map[uint64]bool
}

func (f *fakeRoleSource) RoleStatus(_ context.Context, id uint64) (model.Role, bool, error) {
	r, ok := f.role[id]
	if !ok {
		return "", false, errors.New("no such user")
	}
	return r, f.active[id], nil
}

func invokeRole(t *testing.T, src RoleSource, uid uint64, roles ...model.Role) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxUserID, uid) // simulate TokenAuth having run

	h := RequireRole(src, roles...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestRequireRoleAllows(t *testing.T) {
	src := &fakeRoleSource{
		role:   map[uint64]model.Role{1: model.RoleCashier},
		active: map[uint64]bool{1: true},
	}
	rec := invokeRole(t, src, 1, model.RoleAdmin, model.RoleCashier)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRequireRoleRejectsWrongRole(t *testing.T) {
	src := &fakeRoleSource{
		role:   map[uint64]model.Role{1: model.RoleCashier},
		active: map[uint64]bool{1: true},
	}
	rec := invokeRole(t, src, 1, model.RoleAdmin)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "role not permitted") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

// A still-valid token must be rejected the moment the account is disabled:
// the middleware reads the store, not the claim.
func TestRequireRoleRejectsDisabledAccount(t *testing.T) {
	src := &fakeRoleSource{
		role:   map[uint64]model.Role{2: model.RoleAdmin},
		active: map[uint64]bool{2: false},
	}
	rec := invokeRole(t, src, 2, model.RoleAdmin)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "account disabled") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRequireRoleRejectsUnknownUser(t *testing.T) {
	src := &fakeRoleSource{role: map[uint64]model.Role{}, active: map[uint64]bool{}}
	rec := invokeRole(t, src, 9, model.RoleAdmin)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRoleRejectsMissingIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	src := &fakeRoleSource{role: map[uint64]model.Role{}, active: map[uint64]bool{}}
	h := RequireRole(src, model.RoleAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", rec.Code)
	}
}
