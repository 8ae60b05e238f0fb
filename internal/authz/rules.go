// Package authz holds the per-action authorization rules. Every check
// takes the Principal explicitly; nothing here reads ambient state.
package authz

import (
	"github.com/ecavus/stayhub-backend/internal/apperr"
	"github.com/ecavus/stayhub-backend/internal/models"
)

func CanCreateUser(p Principal) error {
	if !p.IsAdmin {
		return apperr.Forbidden("admin privileges required")
	}
	return nil
}

// CanUpdateUser allows self or admin. Whether the requester may touch
// email/password is a separate check (CanChangeCredentials) because the
// original flow rejects those fields, not the whole request target.
func CanUpdateUser(p Principal, target models.User) error {
	if p.IsAdmin || p.UserID == target.ID {
		return nil
	}
	return apperr.Forbidden("unauthorized action")
}

func CanChangeCredentials(p Principal) error {
	if !p.IsAdmin {
		return apperr.Forbidden("you cannot modify email or password")
	}
	return nil
}

func CanCreateAmenity(p Principal) error {
	if !p.IsAdmin {
		return apperr.Forbidden("admin privileges required")
	}
	return nil
}

func CanUpdateAmenity(p Principal) error {
	if !p.IsAdmin {
		return apperr.Forbidden("admin privileges required")
	}
	return nil
}

func CanUpdatePlace(p Principal, place models.Place) error {
	if p.IsAdmin || p.UserID == place.OwnerID {
		return nil
	}
	return apperr.Forbidden("unauthorized action")
}

// CanCreateReview enforces the two review invariants: no reviewing your
// own place, and at most one review per (user, place). The original
// surfaces both as bad requests rather than authorization failures.
func CanCreateReview(p Principal, place models.Place, alreadyReviewed bool) error {
	if place.OwnerID == p.UserID {
		return apperr.Validation("you cannot review your own place")
	}
	if alreadyReviewed {
		return apperr.Validation("you have already reviewed this place")
	}
	return nil
}

func CanModifyReview(p Principal, review models.Review) error {
	if p.IsAdmin || p.UserID == review.UserID {
		return nil
	}
	return apperr.Forbidden("unauthorized action")
}
