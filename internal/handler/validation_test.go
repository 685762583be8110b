package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

// Validation runs before any store access, so these tests drive the
// handlers with no repositories attached: reaching the store would panic
// and fail the test, which is exactly the point.

func post(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestRegisterRequiresAllFields(t *testing.T) {
	h := &AuthHandler{}
	cases := []string{
		`{}`,
		`{"fullname":"A","username":"a1","email":"a@x.com","password":"p"}`,
		`{"fullname":"A","username":"a1","email":"a@x.com","role":"cashier"}`,
		`{"username":"a1","email":"a@x.com","password":"p","role":"cashier"}`,
	}
	for _, body := range cases {
		rec := post(t, h.Register, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	h := &AuthHandler{}
	rec := post(t, h.Register,
		`{"fullname":"A","username":"a1","email":"a@x.com","password":"p","role":"wizard"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unknown role") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	h := &AuthHandler{}
	rec := post(t, h.Login, `{"email":"a@x.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProductCreateValidation(t *testing.T) {
	h := &ProductHandler{}
	cases := []struct {
		body string
		want string
	}{
		{`{}`, "required"},
		{`{"name":"Tee","size":"M","color":"red","category":"shirt"}`, "required"},
		{`{"name":"Tee","price":-1,"size":"M","color":"red","category":"shirt"}`, "non-negative"},
		{`{"name":"Tee","price":10,"size":"M","color":"red","category":"rocket"}`, "unknown category"},
	}
	for _, c := range cases {
		rec := post(t, h.Create, c.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", c.body, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), c.want) {
			t.Errorf("body %s: expected message containing %q, got %s", c.body, c.want, rec.Body.String())
		}
	}
}

func TestStockCreateValidation(t *testing.T) {
	h := &StockHandler{}
	rec := post(t, h.Create, `{"product_id":1,"action":"restock"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without quantity, got %d", rec.Code)
	}
}

func TestOrderCreateValidation(t *testing.T) {
	h := &OrderHandler{}
	rec := post(t, h.Create, `{"customer_id":1,"status":"pending"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without total, got %d", rec.Code)
	}
	rec = post(t, h.Create, `{"customer_id":1,"status":"pending","total":-5}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative total, got %d", rec.Code)
	}
}

func TestTransactionCreateValidation(t *testing.T) {
	h := &TransactionHandler{}
	rec := post(t, h.Create, `{"order_id":1,"amount":10}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without payment_method/status, got %d", rec.Code)
	}
}
