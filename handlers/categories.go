package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/workoutapi/models"
)

// Pointers let required mean "key present"; empty strings are valid values.
type createCategoryRequest struct {
	Name        *string `json:"name" validate:"required,max=10"`
	Description *string `json:"description" validate:"required,max=200"`
}

// CreateCategory inserts a new category.
func (h *Handler) CreateCategory(c echo.Context) error {
	var req createCategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cat := &models.Category{Name: *req.Name, Description: *req.Description}
	if err := h.store.CreateCategory(c.Request().Context(), cat); err != nil {
		return storeError(err, "", fmt.Sprintf("Category with name %s already exists.", *req.Name))
	}

	return c.JSON(http.StatusCreated, cat)
}

// Categories returns every category.
func (h *Handler) Categories(c echo.Context) error {
	list, err := h.store.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Category returns one category by public id.
func (h *Handler) Category(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cat, err := h.store.Category(c.Request().Context(), id)
	if err != nil {
		return storeError(err, fmt.Sprintf("Category not found with id: %s", id), "")
	}
	return c.JSON(http.StatusOK, cat)
}
