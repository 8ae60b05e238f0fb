package repository

import (
	"context"

	"github.com/ecavus/stayhub-backend/internal/models"
)

// Every repository follows the same contract shape: lookups answer
// apperr.NotFound when the row is absent, Add/Update return the stored
// entity with storage-assigned timestamps, and uniqueness violations
// surface as apperr.Conflict.

type Users interface {
	Get(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Add(ctx context.Context, u models.User) (models.User, error)
	Update(ctx context.Context, u models.User) (models.User, error)
	Delete(ctx context.Context, id string) error
}

type Amenities interface {
	Get(ctx context.Context, id string) (models.Amenity, error)
	GetByName(ctx context.Context, name string) (models.Amenity, error)
	GetAll(ctx context.Context) ([]models.Amenity, error)
	Add(ctx context.Context, a models.Amenity) (models.Amenity, error)
	Update(ctx context.Context, a models.Amenity) (models.Amenity, error)
	Delete(ctx context.Context, id string) error
}

type Places interface {
	Get(ctx context.Context, id string) (models.Place, error)
	GetAll(ctx context.Context) ([]models.Place, error)
	Add(ctx context.Context, p models.Place) (models.Place, error)
	Update(ctx context.Context, p models.Place) (models.Place, error)
	Delete(ctx context.Context, id string) error

	// AttachAmenity records the (place, amenity) pair; attaching an
	// already-attached pair is a no-op.
	AttachAmenity(ctx context.Context, placeID, amenityID string) error
	ListAmenities(ctx context.Context, placeID string) ([]models.Amenity, error)
}

type Reviews interface {
	Get(ctx context.Context, id string) (models.Review, error)
	GetAll(ctx context.Context) ([]models.Review, error)
	ListByPlace(ctx context.Context, placeID string) ([]models.Review, error)
	ExistsForPlaceAndUser(ctx context.Context, placeID, userID string) (bool, error)
	Add(ctx context.Context, r models.Review) (models.Review, error)
	Update(ctx context.Context, r models.Review) (models.Review, error)
	Delete(ctx context.Context, id string) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
