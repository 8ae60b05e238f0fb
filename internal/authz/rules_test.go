package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecavus/stayhub-backend/internal/apperr"
	"github.com/ecavus/stayhub-backend/internal/models"
)

var (
	admin = Principal{UserID: "admin-1", IsAdmin: true}
	alice = Principal{UserID: "alice"}
	bob   = Principal{UserID: "bob"}
)

func TestCreateUserAndAmenityAdminOnly(t *testing.T) {
	assert.NoError(t, CanCreateUser(admin))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(CanCreateUser(alice)))

	assert.NoError(t, CanCreateAmenity(admin))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(CanCreateAmenity(alice)))

	assert.NoError(t, CanUpdateAmenity(admin))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(CanUpdateAmenity(bob)))
}

func TestUpdateUserSelfOrAdmin(t *testing.T) {
	target := models.User{ID: "alice"}
	assert.NoError(t, CanUpdateUser(alice, target))
	assert.NoError(t, CanUpdateUser(admin, target))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(CanUpdateUser(bob, target)))

	assert.NoError(t, CanChangeCredentials(admin))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(CanChangeCredentials(alice)))
}

func TestUpdatePlaceOwnerOrAdmin(t *testing.T) {
	place := models.Place{ID: "p1", OwnerID: "alice"}
	assert.NoError(t, CanUpdatePlace(alice, place))
	assert.NoError(t, CanUpdatePlace(admin, place))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(CanUpdatePlace(bob, place)))
}

func TestCreateReviewRules(t *testing.T) {
	place := models.Place{ID: "p1", OwnerID: "alice"}

	// owner reviewing own place
	err := CanCreateReview(alice, place, false)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// second review per place
	err = CanCreateReview(bob, place, true)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	assert.NoError(t, CanCreateReview(bob, place, false))
}

func TestModifyReviewAuthorOrAdmin(t *testing.T) {
	review := models.Review{ID: "r1", UserID: "bob"}
	assert.NoError(t, CanModifyReview(bob, review))
	assert.NoError(t, CanModifyReview(admin, review))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(CanModifyReview(alice, review)))
}
