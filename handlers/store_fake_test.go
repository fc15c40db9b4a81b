package handlers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/padraicbc/workoutapi/db"
	"github.com/padraicbc/workoutapi/models"
)

// fakeStore mirrors the database semantics in memory: unique names and
// documents, name resolution, and updated_at advancing on every update.
type fakeStore struct {
	mu         sync.Mutex
	categories []*models.Category
	centers    []*models.TrainingCenter
	athletes   []*models.Athlete
	users      map[string]*models.User
	pingErr    error
	userErr    error
	clock      time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: map[string]*models.User{},
		clock: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *fakeStore) Ping(context.Context) error { return s.pingErr }

func (s *fakeStore) CreateCategory(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.categories {
		if x.Name == c.Name {
			return db.ErrDuplicate
		}
	}
	c.PkID = int64(len(s.categories) + 1)
	c.ID = uuid.New()
	c.CreatedAt = s.tick()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	s.categories = append(s.categories, &cp)
	return nil
}

func (s *fakeStore) Category(_ context.Context, id uuid.UUID) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.categories {
		if x.ID == id {
			cp := *x
			return &cp, nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *fakeStore) Categories(context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Category, 0, len(s.categories))
	for _, x := range s.categories {
		out = append(out, *x)
	}
	return out, nil
}

func (s *fakeStore) CreateTrainingCenter(_ context.Context, tc *models.TrainingCenter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.centers {
		if x.Name == tc.Name {
			return db.ErrDuplicate
		}
	}
	tc.PkID = int64(len(s.centers) + 1)
	tc.ID = uuid.New()
	tc.CreatedAt = s.tick()
	tc.UpdatedAt = tc.CreatedAt
	cp := *tc
	s.centers = append(s.centers, &cp)
	return nil
}

func (s *fakeStore) TrainingCenter(_ context.Context, id uuid.UUID) (*models.TrainingCenter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.centers {
		if x.ID == id {
			cp := *x
			return &cp, nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *fakeStore) TrainingCenters(context.Context) ([]models.TrainingCenter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.TrainingCenter, 0, len(s.centers))
	for _, x := range s.centers {
		out = append(out, *x)
	}
	return out, nil
}

func (s *fakeStore) categoryByName(name string) (*models.Category, error) {
	for _, x := range s.categories {
		if x.Name == name {
			return x, nil
		}
	}
	return nil, &db.ReferenceError{Entity: "Category", Name: name}
}

func (s *fakeStore) centerByName(name string) (*models.TrainingCenter, error) {
	for _, x := range s.centers {
		if x.Name == name {
			return x, nil
		}
	}
	return nil, &db.ReferenceError{Entity: "Training Center", Name: name}
}

// withRelations returns a copy of a with Category and TrainingCenter attached.
func (s *fakeStore) withRelations(a *models.Athlete) *models.Athlete {
	cp := *a
	for _, c := range s.categories {
		if c.PkID == a.CategoryID {
			cp.Category = c
		}
	}
	for _, tc := range s.centers {
		if tc.PkID == a.TrainingCenterID {
			cp.TrainingCenter = tc
		}
	}
	return &cp
}

func (s *fakeStore) CreateAthlete(_ context.Context, a *models.Athlete, categoryName, trainingCenterName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat, err := s.categoryByName(categoryName)
	if err != nil {
		return err
	}
	tc, err := s.centerByName(trainingCenterName)
	if err != nil {
		return err
	}
	for _, x := range s.athletes {
		if x.Document == a.Document {
			return db.ErrDuplicate
		}
	}
	a.PkID = int64(len(s.athletes) + 1)
	a.ID = uuid.New()
	a.CategoryID, a.Category = cat.PkID, cat
	a.TrainingCenterID, a.TrainingCenter = tc.PkID, tc
	a.CreatedAt = s.tick()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	cp.Category, cp.TrainingCenter = nil, nil
	s.athletes = append(s.athletes, &cp)
	return nil
}

func (s *fakeStore) UpdateAthlete(_ context.Context, id uuid.UUID, p db.AthletePatch) (*models.Athlete, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stored *models.Athlete
	for _, x := range s.athletes {
		if x.ID == id {
			stored = x
		}
	}
	if stored == nil {
		return nil, db.ErrNotFound
	}

	next := *stored
	if p.CategoryName != nil {
		cat, err := s.categoryByName(*p.CategoryName)
		if err != nil {
			return nil, err
		}
		next.CategoryID = cat.PkID
	}
	if p.TrainingCenterName != nil {
		tc, err := s.centerByName(*p.TrainingCenterName)
		if err != nil {
			return nil, err
		}
		next.TrainingCenterID = tc.PkID
	}
	if p.Name != nil {
		next.Name = *p.Name
	}
	if p.Age != nil {
		next.Age = *p.Age
	}
	if p.Weight != nil {
		next.Weight = *p.Weight
	}
	if p.Height != nil {
		next.Height = *p.Height
	}
	next.UpdatedAt = s.tick()
	*stored = next
	return s.withRelations(stored), nil
}

func (s *fakeStore) Athlete(_ context.Context, id uuid.UUID) (*models.Athlete, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.athletes {
		if x.ID == id {
			return s.withRelations(x), nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *fakeStore) AthleteByDocument(_ context.Context, document string) (*models.Athlete, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.athletes {
		if x.Document == document {
			return s.withRelations(x), nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *fakeStore) Athletes(_ context.Context, f db.AthleteFilter) ([]models.Athlete, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []models.Athlete
	for _, x := range s.athletes {
		if f.Name != "" && !strings.Contains(strings.ToLower(x.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.Document != "" && x.Document != f.Document {
			continue
		}
		matched = append(matched, *s.withRelations(x))
	}
	total := len(matched)
	if f.Offset >= total {
		return []models.Athlete{}, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

func (s *fakeStore) User(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userErr != nil {
		return nil, s.userErr
	}
	if u, ok := s.users[username]; ok {
		return u, nil
	}
	return nil, db.ErrNotFound
}

var errBoom = errors.New("boom")
