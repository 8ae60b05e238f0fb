// Package facade is the single access point the API layer talks to. It
// composes the per-entity repositories and holds no business logic:
// authorization and validation happen before a call lands here.
package facade

import (
	"context"

	"github.com/ecavus/stayhub-backend/internal/models"
	repo "github.com/ecavus/stayhub-backend/internal/repository"
)

type Facade struct {
	users     repo.Users
	amenities repo.Amenities
	places    repo.Places
	reviews   repo.Reviews
}

func New(users repo.Users, amenities repo.Amenities, places repo.Places, reviews repo.Reviews) *Facade {
	return &Facade{users: users, amenities: amenities, places: places, reviews: reviews}
}

// ---------- users ----------

func (f *Facade) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	return f.users.Add(ctx, u)
}

func (f *Facade) GetUser(ctx context.Context, id string) (models.User, error) {
	return f.users.Get(ctx, id)
}

func (f *Facade) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return f.users.GetByEmail(ctx, email)
}

func (f *Facade) GetUsers(ctx context.Context) ([]models.User, error) {
	return f.users.GetAll(ctx)
}

func (f *Facade) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	return f.users.Update(ctx, u)
}

// ---------- amenities ----------

func (f *Facade) CreateAmenity(ctx context.Context, a models.Amenity) (models.Amenity, error) {
	return f.amenities.Add(ctx, a)
}

func (f *Facade) GetAmenity(ctx context.Context, id string) (models.Amenity, error) {
	return f.amenities.Get(ctx, id)
}

func (f *Facade) GetAmenityByName(ctx context.Context, name string) (models.Amenity, error) {
	return f.amenities.GetByName(ctx, name)
}

func (f *Facade) GetAllAmenities(ctx context.Context) ([]models.Amenity, error) {
	return f.amenities.GetAll(ctx)
}

func (f *Facade) UpdateAmenity(ctx context.Context, a models.Amenity) (models.Amenity, error) {
	return f.amenities.Update(ctx, a)
}

// ---------- places ----------

func (f *Facade) CreatePlace(ctx context.Context, p models.Place) (models.Place, error) {
	return f.places.Add(ctx, p)
}

func (f *Facade) GetPlace(ctx context.Context, id string) (models.Place, error) {
	return f.places.Get(ctx, id)
}

func (f *Facade) GetAllPlaces(ctx context.Context) ([]models.Place, error) {
	return f.places.GetAll(ctx)
}

func (f *Facade) UpdatePlace(ctx context.Context, p models.Place) (models.Place, error) {
	return f.places.Update(ctx, p)
}

func (f *Facade) AttachAmenity(ctx context.Context, placeID, amenityID string) error {
	return f.places.AttachAmenity(ctx, placeID, amenityID)
}

func (f *Facade) GetPlaceAmenities(ctx context.Context, placeID string) ([]models.Amenity, error) {
	return f.places.ListAmenities(ctx, placeID)
}

// ---------- reviews ----------

func (f *Facade) CreateReview(ctx context.Context, r models.Review) (models.Review, error) {
	return f.reviews.Add(ctx, r)
}

func (f *Facade) GetReview(ctx context.Context, id string) (models.Review, error) {
	return f.reviews.Get(ctx, id)
}

func (f *Facade) GetAllReviews(ctx context.Context) ([]models.Review, error) {
	return f.reviews.GetAll(ctx)
}

func (f *Facade) GetReviewsByPlace(ctx context.Context, placeID string) ([]models.Review, error) {
	return f.reviews.ListByPlace(ctx, placeID)
}

func (f *Facade) HasUserReviewedPlace(ctx context.Context, placeID, userID string) (bool, error) {
	return f.reviews.ExistsForPlaceAndUser(ctx, placeID, userID)
}

func (f *Facade) UpdateReview(ctx context.Context, r models.Review) (models.Review, error) {
	return f.reviews.Update(ctx, r)
}

func (f *Facade) DeleteReview(ctx context.Context, id string) error {
	return f.reviews.Delete(ctx, id)
}
