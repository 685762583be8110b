package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/FINZ1-ops/shop-api/internal/model"
	"github.com/FINZ1-ops/shop-api/internal/queue"
	"github.com/FINZ1-ops/shop-api/internal/repository"
	"github.com/FINZ1-ops/shop-api/internal/service"
)

// OrderHandler serves the order CRUD endpoints plus the date and customer
// filters.
type OrderHandler struct {
	Orders    *repository.OrderRepo
	Publisher *service.Publisher
}

func NewOrderHandler(o *repository.OrderRepo, pub *service.Publisher) *OrderHandler {
	return &OrderHandler{Orders: o, Publisher: pub}
}

type orderReq struct {
	CustomerID uint64   `json:"customer_id"`
	Status     string   `json:"status"`
	Total      *float64 `json:"total"`
}

// Create handles POST /v1/orders.
func (h *OrderHandler) Create(c echo.Context) error {
	var req orderReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Status = strings.TrimSpace(req.Status)
	if req.CustomerID == 0 || req.Status == "" || req.Total == nil {
		return fail(c, http.StatusBadRequest, "customer_id, status and total are required")
	}
	if *req.Total < 0 {
		return fail(c, http.StatusBadRequest, "total must be non-negative")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	o := model.Order{CustomerID: req.CustomerID, Status: req.Status, Total: *req.Total}
	if err := h.Orders.Create(ctx, &o); err != nil {
		return fail(c, http.StatusInternalServerError, "could not create order")
	}

	go h.Publisher.OrderCreated(queue.OrderCreatedEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		Total:      o.Total,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return respondMsg(c, http.StatusCreated, "order created", o)
}

// List handles GET /v1/orders.
func (h *OrderHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Orders.List(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list orders")
	}
	return respond(c, http.StatusOK, items)
}

// ListByDate handles GET /v1/orders/date/:date with date formatted as
// YYYY-MM-DD.
func (h *OrderHandler) ListByDate(c echo.Context) error {
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fail(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Orders.ListByDate(ctx, date)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list orders")
	}
	return respond(c, http.StatusOK, items)
}

// ListByCustomer handles GET /v1/orders/customer/:customer_id.
func (h *OrderHandler) ListByCustomer(c echo.Context) error {
	cid, err := strconv.ParseUint(c.Param("customer_id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid customer id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Orders.ListByCustomer(ctx, cid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list orders")
	}
	return respond(c, http.StatusOK, items)
}

// Get handles GET /v1/orders/:id.
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	o, err := h.Orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "order not found")
		}
		return fail(c, http.StatusInternalServerError, "lookup failed")
	}
	return respond(c, http.StatusOK, o)
}

type orderUpdateReq struct {
	CustomerID *uint64  `json:"customer_id"`
	Status     *string  `json:"status"`
	Total      *float64 `json:"total"`
}

// Update handles PUT /v1/orders/:id.
func (h *OrderHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req orderUpdateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.Total != nil && *req.Total < 0 {
		return fail(c, http.StatusBadRequest, "total must be non-negative")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	upd := repository.OrderUpdate{CustomerID: req.CustomerID, Status: req.Status, Total: req.Total}
	if err := h.Orders.Update(ctx, id, upd); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "order not found")
		}
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	o, err := h.Orders.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	return respond(c, http.StatusOK, o)
}

// Delete handles DELETE /v1/orders/:id.
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Orders.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "order not found")
		}
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	return respondMsg(c, http.StatusOK, "order deleted", nil)
}
