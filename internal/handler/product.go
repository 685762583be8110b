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
	"github.com/FINZ1-ops/shop-api/internal/repository"
)

// ProductHandler serves the product CRUD endpoints.  Creation runs the
// id-allocating transaction; stock is read-only here and only moves through
// the stock endpoints.
type ProductHandler struct {
	Products *repository.ProductRepo
}

func NewProductHandler(p *repository.ProductRepo) *ProductHandler {
	return &ProductHandler{Products: p}
}

type productReq struct {
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Size     string   `json:"size"`
	Color    string   `json:"color"`
	Category string   `json:"category"`
	Stock    *int64   `json:"stock"`
}

// Create handles POST /v1/products.  All fields are validated before any
// store access; the id is allocated server-side under the creation lock, so
// concurrent creations can never collide.
func (h *ProductHandler) Create(c echo.Context) error {
	var req productReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Size = strings.TrimSpace(req.Size)
	req.Color = strings.TrimSpace(req.Color)
	if req.Name == "" || req.Size == "" || req.Color == "" || req.Category == "" || req.Price == nil {
		return fail(c, http.StatusBadRequest, "name, price, size, color and category are required")
	}
	if *req.Price < 0 {
		return fail(c, http.StatusBadRequest, "price must be non-negative")
	}
	category, ok := model.ValidCategory(req.Category)
	if !ok {
		return fail(c, http.StatusBadRequest, "unknown category")
	}

	p := model.Product{
		Name:     req.Name,
		Price:    *req.Price,
		Size:     req.Size,
		Color:    req.Color,
		Category: category,
	}
	if req.Stock != nil && *req.Stock > 0 {
		p.Stock = *req.Stock
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Products.CreateNext(ctx, &p); err != nil {
		return fail(c, http.StatusInternalServerError, "could not create product")
	}
	return respondMsg(c, http.StatusCreated, "product created", p)
}

// List handles GET /v1/products.
func (h *ProductHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Products.List(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list products")
	}
	return respond(c, http.StatusOK, items)
}

// Get handles GET /v1/products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "product not found")
		}
		return fail(c, http.StatusInternalServerError, "lookup failed")
	}
	return respond(c, http.StatusOK, p)
}

type productUpdateReq struct {
	Name      *string  `json:"name"`
	Price     *float64 `json:"price"`
	Size      *string  `json:"size"`
	Color     *string  `json:"color"`
	Category  *string  `json:"category"`
	Available *bool    `json:"available"`
}

// Update handles PUT /v1/products/:id.  Unset fields keep their value.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req productUpdateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.Price != nil && *req.Price < 0 {
		return fail(c, http.StatusBadRequest, "price must be non-negative")
	}
	upd := repository.ProductUpdate{
		Name:      req.Name,
		Price:     req.Price,
		Size:      req.Size,
		Color:     req.Color,
		Available: req.Available,
	}
	if req.Category != nil {
		category, ok := model.ValidCategory(*req.Category)
		if !ok {
			return fail(c, http.StatusBadRequest, "unknown category")
		}
		upd.Category = &category
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Products.Update(ctx, id, upd); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "product not found")
		}
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	p, err := h.Products.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	return respond(c, http.StatusOK, p)
}

// Delete handles DELETE /v1/products/:id.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "product not found")
		}
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	return respondMsg(c, http.StatusOK, "product deleted", nil)
}

// parseID reads the :id path parameter shared by every resource route.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
