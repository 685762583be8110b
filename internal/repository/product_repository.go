package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/FINZ1-ops/shop-api/internal/model"
)

const productColumns = "id,name,price,size,color,category,available,stock"

// ProductRepo provides data access to the products table.  Product ids are
// not auto-incremented by the database; they are computed inside
// CreateNext's transaction so the allocation is observable and portable.
type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

// CreateNext allocates the next product id and inserts the row inside one
// transaction.  The locking read on MAX(id) serializes concurrent creators:
// a second writer blocks on the lock until the first commits, then computes
// its own id from the committed state.  Plain readers are not blocked.
// On any failure the whole transaction rolls back and no partial insert is
// observable.  The product's ID field is set on success.
func (r *ProductRepo) CreateNext(ctx context.Context, p *model.Product) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var maxID uint64
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(id),0) FROM products FOR UPDATE").Scan(&maxID); err != nil {
		return err
	}
	p.ID = maxID + 1
	p.Available = true
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO products (id, name, price, size, color, category, available, stock) VALUES (?,?,?,?,?,?,1,?)",
		p.ID, p.Name, p.Price, p.Size, p.Color, p.Category, p.Stock); err != nil {
		return err
	}
	return tx.Commit()
}

// GetByID fetches a product by id.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	var p model.Product
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id=? LIMIT 1", id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Size, &p.Color, &p.Category, &p.Available, &p.Stock)
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	return p, err
}

// List returns all products ordered by id.
func (r *ProductRepo) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+productColumns+" FROM products ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Size, &p.Color,
			&p.Category, &p.Available, &p.Stock); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// ProductUpdate carries the optional fields of a partial product update.
// Stock is deliberately absent: stock only changes through stock movements.
type ProductUpdate struct {
	Name      *string
	Price     *float64
	Size      *string
	Color     *string
	Category  *string
	Available *bool
}

// Update applies a partial update.  Returns ErrNotFound when the product
// does not exist.
func (r *ProductRepo) Update(ctx context.Context, id uint64, upd ProductUpdate) error {
	var exists int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM products WHERE id=?", id).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}

	sets := []string{}
	args := []any{}
	if upd.Name != nil {
		sets, args = append(sets, "name=?"), append(args, *upd.Name)
	}
	if upd.Price != nil {
		sets, args = append(sets, "price=?"), append(args, *upd.Price)
	}
	if upd.Size != nil {
		sets, args = append(sets, "size=?"), append(args, *upd.Size)
	}
	if upd.Color != nil {
		sets, args = append(sets, "color=?"), append(args, *upd.Color)
	}
	if upd.Category != nil {
		sets, args = append(sets, "category=?"), append(args, *upd.Category)
	}
	if upd.Available != nil {
		sets, args = append(sets, "available=?"), append(args, *upd.Available)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE products SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	return err
}

// Delete removes a product row.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id=?", id)
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
