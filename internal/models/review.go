package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecavus/stayhub-backend/internal/apperr"
	"github.com/ecavus/stayhub-backend/internal/validate"
)

type Review struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	PlaceID   string    `json:"place_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReview builds a review by userID on placeID. Both references are
// fixed here and never change afterwards.
func NewReview(text string, rating int, placeID, userID string) (Review, error) {
	r := Review{
		ID:      uuid.NewString(),
		Text:    strings.TrimSpace(text),
		Rating:  rating,
		PlaceID: placeID,
		UserID:  userID,
	}
	if err := r.Validate(); err != nil {
		return Review{}, err
	}
	return r, nil
}

func (r *Review) Validate() error {
	var errs validate.Errs
	if ef := validate.Required("text", r.Text); ef != nil {
		errs = append(errs, *ef)
	}
	if ef := validate.IntRange("rating", r.Rating, 1, 5); ef != nil {
		errs = append(errs, *ef)
	}
	if ef := validate.Required("place_id", r.PlaceID); ef != nil {
		errs = append(errs, *ef)
	}
	if ef := validate.Required("user_id", r.UserID); ef != nil {
		errs = append(errs, *ef)
	}
	if len(errs) > 0 {
		return apperr.Wrap(apperr.KindValidation, errs.Error(), errs)
	}
	return nil
}
