package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/FINZ1-ops/shop-api/internal/model"
)

const orderColumns = "id,customer_id,status,total,created_at"

// OrderRepo provides data access to the orders table.
type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

// Create inserts an order and sets its ID.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO orders (customer_id, status, total) VALUES (?,?,?)",
		o.CustomerID, o.Status, o.Total)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return nil
}

// GetByID fetches an order by id.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (model.Order, error) {
	var o model.Order
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id=? LIMIT 1", id).Scan(
		&o.ID, &o.CustomerID, &o.Status, &o.Total, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return o, ErrNotFound
	}
	return o, err
}

// List returns all orders, newest first.
func (r *OrderRepo) List(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, "SELECT "+orderColumns+" FROM orders ORDER BY id DESC")
}

// ListByDate returns the orders created on the given calendar date
// (YYYY-MM-DD, UTC).
func (r *OrderRepo) ListByDate(ctx context.Context, date string) ([]model.Order, error) {
	return r.list(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE DATE(created_at)=? ORDER BY id DESC", date)
}

// ListByCustomer returns the orders belonging to one customer, newest first.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]model.Order, error) {
	return r.list(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE customer_id=? ORDER BY id DESC", customerID)
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.Total, &o.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, o)
	}
	return items, rows.Err()
}

// OrderUpdate carries the optional fields of a partial order update.
type OrderUpdate struct {
	CustomerID *uint64
	Status     *string
	Total      *float64
}

// Update applies a partial update to an order.
func (r *OrderRepo) Update(ctx context.Context, id uint64, upd OrderUpdate) error {
	var exists int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE id=?", id).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}
	sets := []string{}
	args := []any{}
	if upd.CustomerID != nil {
		sets, args = append(sets, "customer_id=?"), append(args, *upd.CustomerID)
	}
	if upd.Status != nil {
		sets, args = append(sets, "status=?"), append(args, strings.TrimSpace(*upd.Status))
	}
	if upd.Total != nil {
		sets, args = append(sets, "total=?"), append(args, *upd.Total)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE orders SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	return err
}

// Delete removes an order row.
func (r *OrderRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM orders WHERE id=?", id)
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
