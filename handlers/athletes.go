package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/workoutapi/db"
	"github.com/padraicbc/workoutapi/models"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// required only checks that a key is present; an empty category or training
// center name is left to fail name resolution.
type createAthleteRequest struct {
	Name               *string  `json:"name" validate:"required,max=50"`
	Document           *string  `json:"document" validate:"required,min=11,max=14"`
	Age                *int     `json:"age" validate:"required,min=0,max=120"`
	Weight             *float64 `json:"weight" validate:"required,gt=0"`
	Height             *float64 `json:"height" validate:"required,min=0,max=3"`
	Gender             *string  `json:"gender" validate:"required,len=1"`
	CategoryName       *string  `json:"category_name" validate:"required"`
	TrainingCenterName *string  `json:"training_center_name" validate:"required"`
}

// document is deliberately absent: it cannot change after creation.
type updateAthleteRequest struct {
	Name               *string  `json:"name" validate:"omitempty,max=50"`
	Age                *int     `json:"age" validate:"omitempty,min=0,max=120"`
	Weight             *float64 `json:"weight" validate:"omitempty,gt=0"`
	Height             *float64 `json:"height" validate:"omitempty,min=0,max=3"`
	CategoryName       *string  `json:"category_name"`
	TrainingCenterName *string  `json:"training_center_name"`
}

type nameRef struct {
	Name string `json:"name"`
}

type athleteResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Document       string    `json:"document"`
	Age            int       `json:"age"`
	Weight         float64   `json:"weight"`
	Height         float64   `json:"height"`
	Gender         string    `json:"gender"`
	Category       *nameRef  `json:"category"`
	TrainingCenter *nameRef  `json:"training_center"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// athleteShort is the condensed row returned by listings.
type athleteShort struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Category       *nameRef  `json:"category"`
	TrainingCenter *nameRef  `json:"training_center"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type athletePage struct {
	Items []athleteShort `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
	Pages int            `json:"pages"`
}

func categoryRef(c *models.Category) *nameRef {
	if c == nil {
		return nil
	}
	return &nameRef{Name: c.Name}
}

func trainingCenterRef(tc *models.TrainingCenter) *nameRef {
	if tc == nil {
		return nil
	}
	return &nameRef{Name: tc.Name}
}

func newAthleteResponse(a *models.Athlete) athleteResponse {
	return athleteResponse{
		ID:             a.ID,
		Name:           a.Name,
		Document:       a.Document,
		Age:            a.Age,
		Weight:         a.Weight,
		Height:         a.Height,
		Gender:         a.Gender,
		Category:       categoryRef(a.Category),
		TrainingCenter: trainingCenterRef(a.TrainingCenter),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// CreateAthlete registers an athlete under an existing category and training center.
func (h *Handler) CreateAthlete(c echo.Context) error {
	var req createAthleteRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	a := &models.Athlete{
		Name:     *req.Name,
		Document: *req.Document,
		Age:      *req.Age,
		Weight:   *req.Weight,
		Height:   *req.Height,
		Gender:   *req.Gender,
	}
	err := h.store.CreateAthlete(c.Request().Context(), a, *req.CategoryName, *req.TrainingCenterName)
	if err != nil {
		return storeError(err, "", fmt.Sprintf("An athlete with document %s already exists.", *req.Document))
	}

	h.log.Info("athlete created", zap.String("id", a.ID.String()))
	return c.JSON(http.StatusCreated, newAthleteResponse(a))
}

// nonEmpty treats an empty reference name in a patch as absent.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// UpdateAthlete applies a partial update to an athlete.
func (h *Handler) UpdateAthlete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateAthleteRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	a, err := h.store.UpdateAthlete(c.Request().Context(), id, db.AthletePatch{
		Name:               req.Name,
		Age:                req.Age,
		Weight:             req.Weight,
		Height:             req.Height,
		CategoryName:       nonEmpty(req.CategoryName),
		TrainingCenterName: nonEmpty(req.TrainingCenterName),
	})
	if err != nil {
		return storeError(err, fmt.Sprintf("Athlete not found with id: %s", id), "")
	}

	return c.JSON(http.StatusOK, newAthleteResponse(a))
}

// Athlete returns one athlete by public id.
func (h *Handler) Athlete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	a, err := h.store.Athlete(c.Request().Context(), id)
	if err != nil {
		return storeError(err, fmt.Sprintf("Athlete not found with id: %s", id), "")
	}
	return c.JSON(http.StatusOK, newAthleteResponse(a))
}

// AthleteByDocument returns one athlete by document.
func (h *Handler) AthleteByDocument(c echo.Context) error {
	doc := c.Param("document")

	a, err := h.store.AthleteByDocument(c.Request().Context(), doc)
	if err != nil {
		return storeError(err, fmt.Sprintf("Athlete not found with document: %s", doc), "")
	}
	return c.JSON(http.StatusOK, newAthleteResponse(a))
}

// Athletes lists athletes, optionally filtered by name substring and exact document.
func (h *Handler) Athletes(c echo.Context) error {
	page, size := 1, defaultPageSize
	err := echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("size", &size).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "page and size must be integers")
	}
	if page < 1 {
		return &ValidationError{Fields: map[string]string{"page": "min=1"}}
	}
	if size < 1 || size > maxPageSize {
		return &ValidationError{Fields: map[string]string{"size": fmt.Sprintf("min=1,max=%d", maxPageSize)}}
	}

	list, total, err := h.store.Athletes(c.Request().Context(), db.AthleteFilter{
		Name:     c.QueryParam("name"),
		Document: c.QueryParam("document"),
		Limit:    size,
		Offset:   (page - 1) * size,
	})
	if err != nil {
		return err
	}

	items := make([]athleteShort, len(list))
	for i := range list {
		a := &list[i]
		items[i] = athleteShort{
			ID:             a.ID,
			Name:           a.Name,
			Category:       categoryRef(a.Category),
			TrainingCenter: trainingCenterRef(a.TrainingCenter),
			CreatedAt:      a.CreatedAt,
			UpdatedAt:      a.UpdatedAt,
		}
	}

	return c.JSON(http.StatusOK, athletePage{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
		Pages: (total + size - 1) / size,
	})
}
