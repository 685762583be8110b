package repository

// Integration tests against a real MySQL instance.  Point TEST_DB_DSN at a
// dedicated, disposable database (schema.sql at the repo root creates the
// tables); the tests are skipped when the variable is unset.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/FINZ1-ops/shop-api/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func clearTables(t *testing.T, db *sql.DB, tables ...string) {
	t.Helper()
	for _, tbl := range tables {
		if _, err := db.Exec("DELETE FROM " + tbl); err != nil {
			t.Fatalf("clear %s: %v", tbl, err)
		}
	}
}

func TestUserCreateRejectsDuplicates(t *testing.T) {
	db := openTestDB(t)
	clearTables(t, db, "tokens", "users")
	repo := NewUserRepo(db)
	ctx := context.Background()

	u := model.User{
		FullName: "A", Username: "a1", Email: "a@x.com",
		PasswordHash: "hash", Role: model.RoleCashier,
	}
	if _, err := repo.Create(ctx, &u); err != nil {
		t.Fatalf("first create: %v", err)
	}

	dup := model.User{
		FullName: "B", Username: "b1", Email: "a@x.com", // same email
		PasswordHash: "hash", Role: model.RoleCashier,
	}
	if _, err := repo.Create(ctx, &dup); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate email, got %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected exactly one row, got %d", n)
	}
}

func TestReplacePairKeepsOneRowPerUser(t *testing.T) {
	db := openTestDB(t)
	clearTables(t, db, "tokens", "users")
	users := NewUserRepo(db)
	pairs := NewTokenRepo(db)
	ctx := context.Background()

	u := model.User{
		FullName: "A", Username: "a1", Email: "a@x.com",
		PasswordHash: "hash", Role: model.RoleCashier,
	}
	uid, err := users.Create(ctx, &u)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	// Two successive logins.
	if err := pairs.ReplacePair(ctx, uid, "access-1", "refresh-1"); err != nil {
		t.Fatalf("first pair: %v", err)
	}
	if err := pairs.ReplacePair(ctx, uid, "access-2", "refresh-2"); err != nil {
		t.Fatalf("second pair: %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM tokens WHERE user_id=?", uid).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected one token pair, got %d", n)
	}
	pair, err := pairs.GetByUser(ctx, uid)
	if err != nil {
		t.Fatalf("get pair: %v", err)
	}
	if pair.RefreshToken != "refresh-2" {
		t.Fatalf("stale pair survived: %q", pair.RefreshToken)
	}

	// Logout twice: both succeed.
	if err := pairs.DeleteForUser(ctx, uid); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := pairs.DeleteForUser(ctx, uid); err != nil {
		t.Fatalf("second delete must be idempotent: %v", err)
	}
}

func TestProductCreateNextNeverCollides(t *testing.T) {
	db := openTestDB(t)
	clearTables(t, db, "stocks", "products")
	repo := NewProductRepo(db)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	ids := make(chan uint64, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := model.Product{
				Name: fmt.Sprintf("tee-%d", i), Price: 9.99,
				Size: "M", Color: "red", Category: "shirt",
			}
			if err := repo.CreateNext(context.Background(), &p); err != nil {
				errs <- err
				return
			}
			ids <- p.ID
		}(i)
	}
	wg.Wait()
	close(errs)
	close(ids)

	for err := range errs {
		t.Fatalf("concurrent create: %v", err)
	}
	seen := map[uint64]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate product id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != workers {
		t.Fatalf("expected %d products, got %d", workers, len(seen))
	}
}

func TestStockAdjustmentIsAtomic(t *testing.T) {
	db := openTestDB(t)
	clearTables(t, db, "stocks", "products")
	products := NewProductRepo(db)
	stocks := NewStockRepo(db)
	ctx := context.Background()

	p := model.Product{Name: "tee", Price: 9.99, Size: "M", Color: "red", Category: "shirt"}
	if err := products.CreateNext(ctx, &p); err != nil {
		t.Fatalf("create product: %v", err)
	}

	m := model.StockMovement{ProductID: p.ID, Quantity: 5, Action: "restock"}
	newStock, err := stocks.CreateWithAdjustment(ctx, &m)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if newStock != 5 {
		t.Fatalf("expected stock 5, got %d", newStock)
	}

	got, err := products.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if got.Stock != 5 {
		t.Fatalf("product stock not updated, got %d", got.Stock)
	}

	// Unknown product: nothing inserted.
	bad := model.StockMovement{ProductID: 9999, Quantity: 1, Action: "restock"}
	if _, err := stocks.CreateWithAdjustment(ctx, &bad); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM stocks WHERE product_id=9999").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("movement row leaked for missing product")
	}
}
