package handlers

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/padraicbc/workoutapi/db"
	"github.com/padraicbc/workoutapi/models"
)

// Store is the persistence surface the handlers depend on. *db.Store implements it.
type Store interface {
	Ping(ctx context.Context) error

	CreateCategory(ctx context.Context, c *models.Category) error
	Category(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Categories(ctx context.Context) ([]models.Category, error)

	CreateTrainingCenter(ctx context.Context, tc *models.TrainingCenter) error
	TrainingCenter(ctx context.Context, id uuid.UUID) (*models.TrainingCenter, error)
	TrainingCenters(ctx context.Context) ([]models.TrainingCenter, error)

	CreateAthlete(ctx context.Context, a *models.Athlete, categoryName, trainingCenterName string) error
	UpdateAthlete(ctx context.Context, id uuid.UUID, p db.AthletePatch) (*models.Athlete, error)
	Athlete(ctx context.Context, id uuid.UUID) (*models.Athlete, error)
	AthleteByDocument(ctx context.Context, document string) (*models.Athlete, error)
	Athletes(ctx context.Context, f db.AthleteFilter) ([]models.Athlete, int, error)

	User(ctx context.Context, username string) (*models.User, error)
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	store  Store
	log    *zap.Logger
	JWTKey []byte
}

// New creates a Handler. An empty jwtKey disables signin.
func New(store Store, logger *zap.Logger, jwtKey []byte) *Handler {
	return &Handler{store: store, log: logger, JWTKey: jwtKey}
}
