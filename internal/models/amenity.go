package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecavus/stayhub-backend/internal/apperr"
	"github.com/ecavus/stayhub-backend/internal/validate"
)

type Amenity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAmenity(name string) (Amenity, error) {
	a := Amenity{ID: uuid.NewString(), Name: strings.TrimSpace(name)}
	if err := a.Validate(); err != nil {
		return Amenity{}, err
	}
	return a, nil
}

func (a *Amenity) Validate() error {
	var errs validate.Errs
	if ef := validate.Required("name", a.Name); ef != nil {
		errs = append(errs, *ef)
	} else if ef := validate.MaxLen("name", a.Name, NameMaxLen); ef != nil {
		errs = append(errs, *ef)
	}
	if len(errs) > 0 {
		return apperr.Wrap(apperr.KindValidation, errs.Error(), errs)
	}
	return nil
}
