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

// CategoryHandler serves the category CRUD endpoints.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewCategoryHandler(r *repository.CategoryRepo) *CategoryHandler {
	return &CategoryHandler{Categories: r}
}

type categoryReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return fail(c, http.StatusBadRequest, "name is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cat := model.Category{Name: req.Name, Description: req.Description}
	if err := h.Categories.Create(ctx, &cat); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return fail(c, http.StatusBadRequest, "category name already exists")
		}
		return fail(c, http.StatusInternalServerError, "could not create category")
	}
	return respondMsg(c, http.StatusCreated, "category created", cat)
}

func (h *CategoryHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Categories.List(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list categories")
	}
	return respond(c, http.StatusOK, items)
}

func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "category not found")
		}
		return fail(c, http.StatusInternalServerError, "lookup failed")
	}
	return respond(c, http.StatusOK, cat)
}

type categoryUpdateReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req categoryUpdateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	upd := repository.CategoryUpdate{Name: req.Name, Description: req.Description}
	if err := h.Categories.Update(ctx, id, upd); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return fail(c, http.StatusNotFound, "category not found")
		case errors.Is(err, repository.ErrConflict):
			return fail(c, http.StatusBadRequest, "category name already exists")
		}
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	return respond(c, http.StatusOK, cat)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "category not found")
		}
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
	return respondMsg(c, http.StatusOK, "category deleted", nil)
}
