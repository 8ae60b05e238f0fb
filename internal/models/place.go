package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecavus/stayhub-backend/internal/apperr"
	"github.com/ecavus/stayhub-backend/internal/validate"
)

type Place struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewPlace builds a place owned by ownerID. The owner is fixed here and
// never changes afterwards.
func NewPlace(title, description string, price, latitude, longitude float64, ownerID string) (Place, error) {
	p := Place{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(title),
		Description: description,
		Price:       price,
		Latitude:    latitude,
		Longitude:   longitude,
		OwnerID:     ownerID,
	}
	if err := p.Validate(); err != nil {
		return Place{}, err
	}
	return p, nil
}

func (p *Place) Validate() error {
	var errs validate.Errs
	if ef := validate.Required("title", p.Title); ef != nil {
		errs = append(errs, *ef)
	}
	if ef := validate.MinFloat("price", p.Price, 0); ef != nil {
		errs = append(errs, *ef)
	}
	if ef := validate.FloatRange("latitude", p.Latitude, -90, 90); ef != nil {
		errs = append(errs, *ef)
	}
	if ef := validate.FloatRange("longitude", p.Longitude, -180, 180); ef != nil {
		errs = append(errs, *ef)
	}
	if ef := validate.Required("owner_id", p.OwnerID); ef != nil {
		errs = append(errs, *ef)
	}
	if len(errs) > 0 {
		return apperr.Wrap(apperr.KindValidation, errs.Error(), errs)
	}
	return nil
}
