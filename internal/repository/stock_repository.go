package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/FINZ1-ops/shop-api/internal/model"
)

// StockRepo provides data access to the stocks table, the append-only log
// of signed stock movements.
type StockRepo struct{ DB *sql.DB }

func NewStockRepo(db *sql.DB) *StockRepo { return &StockRepo{DB: db} }

// CreateWithAdjustment inserts the movement row and applies its signed
// quantity to the referenced product's stock count inside one transaction.
// The locking read on the product row both verifies the reference and
// serializes concurrent adjustments to the same product.  Returns
// ErrNotFound when the product does not exist.  The movement's ID and the
// product's resulting stock are set on success.
func (r *StockRepo) CreateWithAdjustment(ctx context.Context, m *model.StockMovement) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var stock int64
	err = tx.QueryRowContext(ctx,
		"SELECT stock FROM products WHERE id=? FOR UPDATE", m.ProductID).Scan(&stock)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO stocks (product_id, quantity, action) VALUES (?,?,?)",
		m.ProductID, m.Quantity, m.Action)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	m.ID = uint64(id)

	newStock := stock + m.Quantity
	if _, err := tx.ExecContext(ctx,
		"UPDATE products SET stock=? WHERE id=?", newStock, m.ProductID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newStock, nil
}

const stockColumns = "id,product_id,quantity,action,created_at"

// GetByID fetches a movement by id.
func (r *StockRepo) GetByID(ctx context.Context, id uint64) (model.StockMovement, error) {
	var m model.StockMovement
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+stockColumns+" FROM stocks WHERE id=? LIMIT 1", id).Scan(
		&m.ID, &m.ProductID, &m.Quantity, &m.Action, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return m, ErrNotFound
	}
	return m, err
}

// List returns all movements, newest first.
func (r *StockRepo) List(ctx context.Context) ([]model.StockMovement, error) {
	return r.list(ctx, "SELECT "+stockColumns+" FROM stocks ORDER BY id DESC")
}

// ListByProduct returns the movements for one product, newest first.
func (r *StockRepo) ListByProduct(ctx context.Context, productID uint64) ([]model.StockMovement, error) {
	return r.list(ctx,
		"SELECT "+stockColumns+" FROM stocks WHERE product_id=? ORDER BY id DESC", productID)
}

func (r *StockRepo) list(ctx context.Context, query string, args ...any) ([]model.StockMovement, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []model.StockMovement{}
	for rows.Next() {
		var m model.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Quantity, &m.Action, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// StockUpdate carries the optional fields of a partial movement update.
// Only the action label can change; quantities are part of the applied
// history and stay immutable.
type StockUpdate struct {
	Action *string
}

// Update applies a partial update to a movement row.
func (r *StockRepo) Update(ctx context.Context, id uint64, upd StockUpdate) error {
	var exists int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM stocks WHERE id=?", id).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}
	if upd.Action == nil {
		return nil
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE stocks SET action=? WHERE id=?", strings.TrimSpace(*upd.Action), id)
	return err
}

// Delete removes a movement row without touching the product stock; the
// applied adjustment stands.
func (r *StockRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM stocks WHERE id=?", id)
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
