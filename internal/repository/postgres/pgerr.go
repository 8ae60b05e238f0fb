package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ecavus/stayhub-backend/internal/apperr"
)

// mapErr translates driver errors into the app taxonomy: no rows becomes
// NotFound, a unique violation becomes Conflict. Everything else passes
// through untouched.
func mapErr(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("%s not found", entity)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperr.Wrap(apperr.KindConflict, entity+" already exists", err)
	}
	return err
}
