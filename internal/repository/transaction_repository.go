package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/FINZ1-ops/shop-api/internal/model"
)

const txnColumns = "id,order_id,amount,payment_method,status,created_at"

// TransactionRepo provides data access to the transactions table.
type TransactionRepo struct{ DB *sql.DB }

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{DB: db} }

// Create inserts a transaction and sets its ID.
func (r *TransactionRepo) Create(ctx context.Context, t *model.Transaction) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO transactions (order_id, amount, payment_method, status) VALUES (?,?,?,?)",
		t.OrderID, t.Amount, t.PaymentMethod, t.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID fetches a transaction by id.
func (r *TransactionRepo) GetByID(ctx context.Context, id uint64) (model.Transaction, error) {
	var t model.Transaction
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+txnColumns+" FROM transactions WHERE id=? LIMIT 1", id).Scan(
		&t.ID, &t.OrderID, &t.Amount, &t.PaymentMethod, &t.Status, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return t, ErrNotFound
	}
	return t, err
}

// List returns all transactions, newest first.
func (r *TransactionRepo) List(ctx context.Context) ([]model.Transaction, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+txnColumns+" FROM transactions ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.OrderID, &t.Amount, &t.PaymentMethod,
			&t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// TransactionUpdate carries the optional fields of a partial update.
type TransactionUpdate struct {
	Amount        *float64
	PaymentMethod *string
	Status        *string
}

// Update applies a partial update to a transaction.
func (r *TransactionRepo) Update(ctx context.Context, id uint64, upd TransactionUpdate) error {
	var exists int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE id=?", id).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}
	sets := []string{}
	args := []any{}
	if upd.Amount != nil {
		sets, args = append(sets, "amount=?"), append(args, *upd.Amount)
	}
	if upd.PaymentMethod != nil {
		sets, args = append(sets, "payment_method=?"), append(args, strings.TrimSpace(*upd.PaymentMethod))
	}
	if upd.Status != nil {
		sets, args = append(sets, "status=?"), append(args, strings.TrimSpace(*upd.Status))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE transactions SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	return err
}

// Delete removes a transaction row.
func (r *TransactionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM transactions WHERE id=?", id)
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
