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

// StockHandler serves the stock-movement endpoints.  Creating a movement
// applies its signed quantity to the product inside one transaction and
// publishes a stock.adjusted event afterwards.
type StockHandler struct {
	Stocks    *repository.StockRepo
	Publisher *service.Publisher
}

func NewStockHandler(s *repository.StockRepo, pub *service.Publisher) *StockHandler {
	return &StockHandler{Stocks: s, Publisher: pub}
}

type stockReq struct {
	ProductID uint64 `json:"product_id"`
	Quantity  *int64 `json:"quantity"`
	Action    string `json:"action"`
}

// Create handles POST /v1/stocks.
func (h *StockHandler) Create(c echo.Context) error {
	var req stockReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Action = strings.TrimSpace(req.Action)
	if req.ProductID == 0 || req.Quantity == nil || req.Action == "" {
		return fail(c, http.StatusBadRequest, "product_id, quantity and action are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m := model.StockMovement{
		ProductID: req.ProductID,
		Quantity:  *req.Quantity,
		Action:    req.Action,
	}
	newStock, err := h.Stocks.CreateWithAdjustment(ctx, &m)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "product not found")
		}
		return fail(c, http.StatusInternalServerError, "could not create stock movement")
	}

	// Fire-and-forget: a broker outage must not fail the request.
	go h.Publisher.StockAdjusted(queue.StockAdjustedEvent{
		MovementID: m.ID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
		Action:     m.Action,
		NewStock:   newStock,
		AdjustedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return respondMsg(c, http.StatusCreated, "stock movement recorded", echo.Map{
		"movement":  m,
		"new_stock": newStock,
	})
}

// List handles GET /v1/stocks.
func (h *StockHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Stocks.List(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list stock movements")
	}
	return respond(c, http.StatusOK, items)
}

// ListByProduct handles GET /v1/stocks/product/:product_id.
func (h *StockHandler) ListByProduct(c echo.Context) error {
	pid, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Stocks.ListByProduct(ctx, pid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list stock movements")
	}
	return respond(c, http.StatusOK, items)
}

// Get handles GET /v1/stocks/:id.
func (h *StockHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Stocks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "stock movement not found")
		}
		return fail(c, http.StatusInternalServerError, "lookup failed")
	}
	return respond(c, http.StatusOK, m)
}

type stockUpdateReq struct {
	Action *string `json:"action"`
}

// Update handles PUT /v1/stocks/:id.  Only the action label can change.
func (h *StockHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req stockUpdateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Stocks.Update(ctx, id, repository.StockUpdate{Action: req.Action}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "stock movement not found")
		}
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	m, err := h.Stocks.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	return respond(c, http.StatusOK, m)
}

// Delete handles DELETE /v1/stocks/:id.
func (h *StockHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Stocks.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "stock movement not found")
		}
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	return respondMsg(c, http.StatusOK, "stock movement deleted", nil)
}
