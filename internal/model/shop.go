package model

import "time"

// Category is a row in the `categories` table.  Categories are a plain
// CRUD resource; product categorization itself is validated against the
// fixed ProductCategories set.
type Category struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StockMovement is an append-only row in the `stocks` table recording a
// signed change to a product's stock count.  Every insert is paired with
// the corresponding products.stock update inside one transaction.
type StockMovement struct {
	ID        uint64    `json:"id"`
	ProductID uint64    `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// Order is a row in the `orders` table referencing the customer it belongs to.
type Order struct {
	ID         uint64    `json:"id"`
	CustomerID uint64    `json:"customer_id"`
	Status     string    `json:"status"`
	Total      float64   `json:"total"`
	CreatedAt  time.Time `json:"created_at"`
}

// Transaction is a payment record in the `transactions` table referencing
// the order it settles.
type Transaction struct {
	ID            uint64    `json:"id"`
	OrderID       uint64    `json:"order_id"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
