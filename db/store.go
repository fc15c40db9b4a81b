package db

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/padraicbc/workoutapi/models"
)

// Store runs the service's queries against PostgreSQL. Every mutating athlete
// operation runs in its own transaction.
type Store struct {
	db *bun.DB
}

// NewStore wraps an open bun handle.
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// AthleteFilter narrows an athlete listing. Zero-valued fields are ignored.
type AthleteFilter struct {
	Name     string
	Document string
	Limit    int
	Offset   int
}

// AthletePatch holds the fields of a partial athlete update; nil means untouched.
type AthletePatch struct {
	Name               *string
	Age                *int
	Weight             *float64
	Height             *float64
	CategoryName       *string
	TrainingCenterName *string
}

// Postgres keeps microseconds; truncating here keeps returned values equal to stored ones.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// advance returns a timestamp strictly after prev.
func advance(prev time.Time) time.Time {
	t := now()
	if !t.After(prev) {
		t = prev.Add(time.Microsecond)
	}
	return t
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateCategory inserts c, assigning its public id and timestamps.
func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	c.ID = uuid.New()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt

	_, err := s.db.NewInsert().Model(c).Exec(ctx)
	return translate(err)
}

// Category looks up a category by public id.
func (s *Store) Category(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c := new(models.Category)
	err := s.db.NewSelect().Model(c).Where("c.id = ?", id).Scan(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

// Categories returns every category.
func (s *Store) Categories(ctx context.Context) ([]models.Category, error) {
	list := make([]models.Category, 0)
	if err := s.db.NewSelect().Model(&list).OrderExpr("c.pk_id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateTrainingCenter inserts tc, assigning its public id and timestamps.
func (s *Store) CreateTrainingCenter(ctx context.Context, tc *models.TrainingCenter) error {
	tc.ID = uuid.New()
	tc.CreatedAt = now()
	tc.UpdatedAt = tc.CreatedAt

	_, err := s.db.NewInsert().Model(tc).Exec(ctx)
	return translate(err)
}

// TrainingCenter looks up a training center by public id.
func (s *Store) TrainingCenter(ctx context.Context, id uuid.UUID) (*models.TrainingCenter, error) {
	tc := new(models.TrainingCenter)
	err := s.db.NewSelect().Model(tc).Where("tc.id = ?", id).Scan(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return tc, nil
}

// TrainingCenters returns every training center.
func (s *Store) TrainingCenters(ctx context.Context) ([]models.TrainingCenter, error) {
	list := make([]models.TrainingCenter, 0)
	if err := s.db.NewSelect().Model(&list).OrderExpr("tc.pk_id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateAthlete resolves the category and training center by name and inserts
// a. A missing name yields *ReferenceError; a taken document yields ErrDuplicate.
func (s *Store) CreateAthlete(ctx context.Context, a *models.Athlete, categoryName, trainingCenterName string) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		cat, err := categoryByName(ctx, tx, categoryName)
		if err != nil {
			return err
		}
		tc, err := trainingCenterByName(ctx, tx, trainingCenterName)
		if err != nil {
			return err
		}

		a.ID = uuid.New()
		a.CategoryID, a.Category = cat.PkID, cat
		a.TrainingCenterID, a.TrainingCenter = tc.PkID, tc
		a.CreatedAt = now()
		a.UpdatedAt = a.CreatedAt

		_, err = tx.NewInsert().Model(a).Exec(ctx)
		return translate(err)
	})
}

// UpdateAthlete applies p to the athlete with public id id and returns the
// stored result. updated_at advances even when p is empty.
func (s *Store) UpdateAthlete(ctx context.Context, id uuid.UUID, p AthletePatch) (*models.Athlete, error) {
	var out *models.Athlete
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		a := new(models.Athlete)
		err := tx.NewSelect().Model(a).Where("a.id = ?", id).For("UPDATE").Scan(ctx)
		if err != nil {
			return translate(err)
		}

		if p.CategoryName != nil {
			cat, err := categoryByName(ctx, tx, *p.CategoryName)
			if err != nil {
				return err
			}
			a.CategoryID = cat.PkID
		}
		if p.TrainingCenterName != nil {
			tc, err := trainingCenterByName(ctx, tx, *p.TrainingCenterName)
			if err != nil {
				return err
			}
			a.TrainingCenterID = tc.PkID
		}
		if p.Name != nil {
			a.Name = *p.Name
		}
		if p.Age != nil {
			a.Age = *p.Age
		}
		if p.Weight != nil {
			a.Weight = *p.Weight
		}
		if p.Height != nil {
			a.Height = *p.Height
		}
		a.UpdatedAt = advance(a.UpdatedAt)

		_, err = tx.NewUpdate().Model(a).
			Column("name", "age", "weight", "height", "category_id", "training_center_id", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return translate(err)
		}

		out, err = athleteWhere(ctx, tx, "a.pk_id = ?", a.PkID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Athlete looks up an athlete by public id, with category and training center.
func (s *Store) Athlete(ctx context.Context, id uuid.UUID) (*models.Athlete, error) {
	return athleteWhere(ctx, s.db, "a.id = ?", id)
}

// AthleteByDocument looks up an athlete by document, with category and training center.
func (s *Store) AthleteByDocument(ctx context.Context, document string) (*models.Athlete, error) {
	return athleteWhere(ctx, s.db, "a.document = ?", document)
}

// Athletes returns one page of athletes matching f plus the total match count.
func (s *Store) Athletes(ctx context.Context, f AthleteFilter) ([]models.Athlete, int, error) {
	list := make([]models.Athlete, 0)
	q := s.db.NewSelect().
		Model(&list).
		Relation("Category").
		Relation("TrainingCenter").
		OrderExpr("a.pk_id ASC")

	if f.Name != "" {
		q = q.Where("a.name ILIKE ?", "%"+likeEscaper.Replace(f.Name)+"%")
	}
	if f.Document != "" {
		q = q.Where("a.document = ?", f.Document)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// User looks up an API user by username.
func (s *Store) User(ctx context.Context, username string) (*models.User, error) {
	u := new(models.User)
	err := s.db.NewSelect().Model(u).Where("username = ?", username).Scan(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// SaveUser inserts u, replacing the password of an existing user with the same name.
func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	_, err := s.db.NewInsert().Model(u).
		On("CONFLICT (username) DO UPDATE SET password = EXCLUDED.password").
		Exec(ctx)
	return err
}

func athleteWhere(ctx context.Context, db bun.IDB, where string, arg any) (*models.Athlete, error) {
	a := new(models.Athlete)
	err := db.NewSelect().
		Model(a).
		Relation("Category").
		Relation("TrainingCenter").
		Where(where, arg).
		Scan(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

func categoryByName(ctx context.Context, db bun.IDB, name string) (*models.Category, error) {
	c := new(models.Category)
	err := db.NewSelect().Model(c).Where("c.name = ?", name).Scan(ctx)
	if err != nil {
		if err = translate(err); err == ErrNotFound {
			return nil, &ReferenceError{Entity: "Category", Name: name}
		}
		return nil, err
	}
	return c, nil
}

func trainingCenterByName(ctx context.Context, db bun.IDB, name string) (*models.TrainingCenter, error) {
	tc := new(models.TrainingCenter)
	err := db.NewSelect().Model(tc).Where("tc.name = ?", name).Scan(ctx)
	if err != nil {
		if err = translate(err); err == ErrNotFound {
			return nil, &ReferenceError{Entity: "Training Center", Name: name}
		}
		return nil, err
	}
	return tc, nil
}
