package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ecavus/stayhub-backend/internal/apperr"
	"github.com/ecavus/stayhub-backend/internal/models"
	repo "github.com/ecavus/stayhub-backend/internal/repository"
)

type Repositories struct {
	Users     repo.Users
	Amenities repo.Amenities
	Places    repo.Places
	Reviews   repo.Reviews
	AuditLogs repo.AuditLogs
}

func NewRepositories() Repositories {
	amenities := &amenitiesRepo{s: newStore[models.Amenity]()}
	return Repositories{
		Users:     &usersRepo{s: newStore[models.User]()},
		Amenities: amenities,
		Places:    &placesRepo{s: newStore[models.Place](), amenities: amenities, attached: make(map[string][]string)},
		Reviews:   &reviewsRepo{s: newStore[models.Review]()},
		AuditLogs: &auditLogsRepo{},
	}
}

// ---------- users ----------

type usersRepo struct{ s *store[models.User] }

func (r *usersRepo) Get(_ context.Context, id string) (models.User, error) {
	u, ok := r.s.get(id)
	if !ok {
		return models.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (r *usersRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := r.s.find(func(u models.User) bool { return u.Email == email })
	if !ok {
		return models.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (r *usersRepo) GetAll(_ context.Context) ([]models.User, error) {
	return r.s.all(), nil
}

func (r *usersRepo) Add(_ context.Context, u models.User) (models.User, error) {
	if _, dup := r.s.find(func(o models.User) bool { return o.Email == u.Email }); dup {
		return models.User{}, apperr.Conflict("user already exists")
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.put(u.ID, u)
	return u, nil
}

func (r *usersRepo) Update(_ context.Context, u models.User) (models.User, error) {
	cur, ok := r.s.get(u.ID)
	if !ok {
		return models.User{}, apperr.NotFound("user not found")
	}
	if _, dup := r.s.find(func(o models.User) bool { return o.Email == u.Email && o.ID != u.ID }); dup {
		return models.User{}, apperr.Conflict("user already exists")
	}
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = time.Now()
	r.s.put(u.ID, u)
	return u, nil
}

func (r *usersRepo) Delete(_ context.Context, id string) error {
	r.s.remove(id)
	return nil
}

// ---------- amenities ----------

type amenitiesRepo struct{ s *store[models.Amenity] }

func (r *amenitiesRepo) Get(_ context.Context, id string) (models.Amenity, error) {
	a, ok := r.s.get(id)
	if !ok {
		return models.Amenity{}, apperr.NotFound("amenity not found")
	}
	return a, nil
}

func (r *amenitiesRepo) GetByName(_ context.Context, name string) (models.Amenity, error) {
	a, ok := r.s.find(func(a models.Amenity) bool { return a.Name == name })
	if !ok {
		return models.Amenity{}, apperr.NotFound("amenity not found")
	}
	return a, nil
}

func (r *amenitiesRepo) GetAll(_ context.Context) ([]models.Amenity, error) {
	return r.s.all(), nil
}

func (r *amenitiesRepo) Add(_ context.Context, a models.Amenity) (models.Amenity, error) {
	if _, dup := r.s.find(func(o models.Amenity) bool { return o.Name == a.Name }); dup {
		return models.Amenity{}, apperr.Conflict("amenity already exists")
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.put(a.ID, a)
	return a, nil
}

func (r *amenitiesRepo) Update(_ context.Context, a models.Amenity) (models.Amenity, error) {
	cur, ok := r.s.get(a.ID)
	if !ok {
		return models.Amenity{}, apperr.NotFound("amenity not found")
	}
	if _, dup := r.s.find(func(o models.Amenity) bool { return o.Name == a.Name && o.ID != a.ID }); dup {
		return models.Amenity{}, apperr.Conflict("amenity already exists")
	}
	a.CreatedAt = cur.CreatedAt
	a.UpdatedAt = time.Now()
	r.s.put(a.ID, a)
	return a, nil
}

func (r *amenitiesRepo) Delete(_ context.Context, id string) error {
	r.s.remove(id)
	return nil
}

// ---------- places ----------

type placesRepo struct {
	s         *store[models.Place]
	amenities *amenitiesRepo

	mu       sync.Mutex
	attached map[string][]string // place id -> amenity ids
}

func (r *placesRepo) Get(_ context.Context, id string) (models.Place, error) {
	p, ok := r.s.get(id)
	if !ok {
		return models.Place{}, apperr.NotFound("place not found")
	}
	return p, nil
}

func (r *placesRepo) GetAll(_ context.Context) ([]models.Place, error) {
	return r.s.all(), nil
}

func (r *placesRepo) Add(_ context.Context, p models.Place) (models.Place, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.put(p.ID, p)
	return p, nil
}

func (r *placesRepo) Update(_ context.Context, p models.Place) (models.Place, error) {
	cur, ok := r.s.get(p.ID)
	if !ok {
		return models.Place{}, apperr.NotFound("place not found")
	}
	p.CreatedAt = cur.CreatedAt
	p.OwnerID = cur.OwnerID
	p.UpdatedAt = time.Now()
	r.s.put(p.ID, p)
	return p, nil
}

func (r *placesRepo) Delete(_ context.Context, id string) error {
	r.s.remove(id)
	r.mu.Lock()
	delete(r.attached, id)
	r.mu.Unlock()
	return nil
}

func (r *placesRepo) AttachAmenity(_ context.Context, placeID, amenityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.attached[placeID] {
		if id == amenityID {
			return nil
		}
	}
	r.attached[placeID] = append(r.attached[placeID], amenityID)
	return nil
}

func (r *placesRepo) ListAmenities(_ context.Context, placeID string) ([]models.Amenity, error) {
	r.mu.Lock()
	ids := append([]string(nil), r.attached[placeID]...)
	r.mu.Unlock()
	out := make([]models.Amenity, 0, len(ids))
	for _, id := range ids {
		if a, ok := r.amenities.s.get(id); ok {
			out = append(out, a)
		}
	}
	return out, nil
}

// ---------- reviews ----------

type reviewsRepo struct{ s *store[models.Review] }

func (r *reviewsRepo) Get(_ context.Context, id string) (models.Review, error) {
	rv, ok := r.s.get(id)
	if !ok {
		return models.Review{}, apperr.NotFound("review not found")
	}
	return rv, nil
}

func (r *reviewsRepo) GetAll(_ context.Context) ([]models.Review, error) {
	return r.s.all(), nil
}

func (r *reviewsRepo) ListByPlace(_ context.Context, placeID string) ([]models.Review, error) {
	var out []models.Review
	for _, rv := range r.s.all() {
		if rv.PlaceID == placeID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *reviewsRepo) ExistsForPlaceAndUser(_ context.Context, placeID, userID string) (bool, error) {
	_, ok := r.s.find(func(rv models.Review) bool {
		return rv.PlaceID == placeID && rv.UserID == userID
	})
	return ok, nil
}

func (r *reviewsRepo) Add(_ context.Context, rv models.Review) (models.Review, error) {
	if dup, _ := r.ExistsForPlaceAndUser(context.Background(), rv.PlaceID, rv.UserID); dup {
		return models.Review{}, apperr.Conflict("review already exists")
	}
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	now := time.Now()
	rv.CreatedAt, rv.UpdatedAt = now, now
	r.s.put(rv.ID, rv)
	return rv, nil
}

func (r *reviewsRepo) Update(_ context.Context, rv models.Review) (models.Review, error) {
	cur, ok := r.s.get(rv.ID)
	if !ok {
		return models.Review{}, apperr.NotFound("review not found")
	}
	rv.CreatedAt = cur.CreatedAt
	rv.PlaceID = cur.PlaceID
	rv.UserID = cur.UserID
	rv.UpdatedAt = time.Now()
	r.s.put(rv.ID, rv)
	return rv, nil
}

func (r *reviewsRepo) Delete(_ context.Context, id string) error {
	r.s.remove(id)
	return nil
}

// ---------- audit logs ----------

type auditLogsRepo struct {
	mu   sync.Mutex
	logs []models.AuditLog
}

func (r *auditLogsRepo) Create(_ context.Context, l models.AuditLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = time.Now()
	r.mu.Lock()
	r.logs = append(r.logs, l)
	r.mu.Unlock()
	return nil
}
