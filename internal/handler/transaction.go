package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/FINZ1-ops/shop-api/internal/model"
	"github.com/FINZ1-ops/shop-api/internal/repository"
)

// TransactionHandler serves the transaction CRUD endpoints.
type TransactionHandler struct {
	Transactions *repository.TransactionRepo
	Orders       *repository.OrderRepo
}

func NewTransactionHandler(t *repository.TransactionRepo, o *repository.OrderRepo) *TransactionHandler {
	return &TransactionHandler{Transactions: t, Orders: o}
}

type transactionReq struct {
	OrderID       uint64   `json:"order_id"`
	Amount        *float64 `json:"amount"`
	PaymentMethod string   `json:"payment_method"`
	Status        string   `json:"status"`
}

// Create handles POST /v1/transactions.  The referenced order must exist.
func (h *TransactionHandler) Create(c echo.Context) error {
	var req transactionReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.PaymentMethod = strings.TrimSpace(req.PaymentMethod)
	req.Status = strings.TrimSpace(req.Status)
	if req.OrderID == 0 || req.Amount == nil || req.PaymentMethod == "" || req.Status == "" {
		return fail(c, http.StatusBadRequest, "order_id, amount, payment_method and status are required")
	}
	if *req.Amount < 0 {
		return fail(c, http.StatusBadRequest, "amount must be non-negative")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Orders.GetByID(ctx, req.OrderID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "order not found")
		}
		return fail(c, http.StatusInternalServerError, "could not create transaction")
	}

	t := model.Transaction{
		OrderID:       req.OrderID,
		Amount:        *req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
	}
	if err := h.Transactions.Create(ctx, &t); err != nil {
		return fail(c, http.StatusInternalServerError, "could not create transaction")
	}
	return respondMsg(c, http.StatusCreated, "transaction created", t)
}

// List handles GET /v1/transactions.
func (h *TransactionHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Transactions.List(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list transactions")
	}
	return respond(c, http.StatusOK, items)
}

// Get handles GET /v1/transactions/:id.
func (h *TransactionHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "transaction not found")
		}
		return fail(c, http.StatusInternalServerError, "lookup failed")
	}
	return respond(c, http.StatusOK, t)
}

type transactionUpdateReq struct {
	Amount        *float64 `json:"amount"`
	PaymentMethod *string  `json:"payment_method"`
	Status        *string  `json:"status"`
}

// Update handles PUT /v1/transactions/:id.
func (h *TransactionHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req transactionUpdateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.Amount != nil && *req.Amount < 0 {
		return fail(c, http.StatusBadRequest, "amount must be non-negative")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	upd := repository.TransactionUpdate{
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
	}
	if err := h.Transactions.Update(ctx, id, upd); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "transaction not found")
		}
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	t, err := h.Transactions.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	return respond(c, http.StatusOK, t)
}

// Delete handles DELETE /v1/transactions/:id.
func (h *TransactionHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Transactions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "transaction not found")
		}
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	return respondMsg(c, http.StatusOK, "transaction deleted", nil)
}
