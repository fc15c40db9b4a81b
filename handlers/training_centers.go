package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/workoutapi/models"
)

type createTrainingCenterRequest struct {
	Name         *string `json:"name" validate:"required,max=50"`
	Address      *string `json:"address" validate:"required,max=200"`
	PropertyName *string `json:"property_name" validate:"required,max=100"`
}

// CreateTrainingCenter inserts a new training center.
func (h *Handler) CreateTrainingCenter(c echo.Context) error {
	var req createTrainingCenterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	tc := &models.TrainingCenter{
		Name:         *req.Name,
		Address:      *req.Address,
		PropertyName: *req.PropertyName,
	}
	if err := h.store.CreateTrainingCenter(c.Request().Context(), tc); err != nil {
		return storeError(err, "", fmt.Sprintf("Training center with name %s already exists.", *req.Name))
	}

	return c.JSON(http.StatusCreated, tc)
}

// TrainingCenters returns every training center.
func (h *Handler) TrainingCenters(c echo.Context) error {
	list, err := h.store.TrainingCenters(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// TrainingCenter returns one training center by public id.
func (h *Handler) TrainingCenter(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	tc, err := h.store.TrainingCenter(c.Request().Context(), id)
	if err != nil {
		return storeError(err, fmt.Sprintf("Training center not found with id: %s", id), "")
	}
	return c.JSON(http.StatusOK, tc)
}
