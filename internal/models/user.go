package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecavus/stayhub-backend/internal/apperr"
	"github.com/ecavus/stayhub-backend/internal/validate"
)

// NameMaxLen bounds every name-like field (first/last name, amenity name).
const NameMaxLen = 50

type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser builds a user with a fresh id. The caller supplies an already
// hashed password; plaintext never reaches this package.
func NewUser(firstName, lastName, email, passwordHash string, isAdmin bool) (User, error) {
	u := User{
		ID:           uuid.NewString(),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Email:        strings.TrimSpace(email),
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
	}
	if err := u.Validate(); err != nil {
		return User{}, err
	}
	return u, nil
}

func (u *User) Validate() error {
	var errs validate.Errs
	if ef := validate.Required("first_name", u.FirstName); ef != nil {
		errs = append(errs, *ef)
	} else if ef := validate.MaxLen("first_name", u.FirstName, NameMaxLen); ef != nil {
		errs = append(errs, *ef)
	}
	if ef := validate.Required("last_name", u.LastName); ef != nil {
		errs = append(errs, *ef)
	} else if ef := validate.MaxLen("last_name", u.LastName, NameMaxLen); ef != nil {
		errs = append(errs, *ef)
	}
	if ef := validate.Required("email", u.Email); ef != nil {
		errs = append(errs, *ef)
	} else if ef := validate.Email("email", u.Email); ef != nil {
		errs = append(errs, *ef)
	}
	if u.PasswordHash == "" {
		errs = append(errs, validate.ErrField{Field: "password", Msg: "required"})
	}
	if len(errs) > 0 {
		return apperr.Wrap(apperr.KindValidation, errs.Error(), errs)
	}
	return nil
}
