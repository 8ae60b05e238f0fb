package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecavus/stayhub-backend/internal/models"
	"github.com/ecavus/stayhub-backend/internal/repository"
)

type reviewsRepo struct{ pool *pgxpool.Pool }

func NewReviews(pool *pgxpool.Pool) repository.Reviews {
	return &reviewsRepo{pool: pool}
}

const reviewCols = `id, text, rating, place_id, user_id, created_at, updated_at`

func scanReview(row interface{ Scan(...any) error }) (models.Review, error) {
	var rv models.Review
	err := row.Scan(&rv.ID, &rv.Text, &rv.Rating, &rv.PlaceID, &rv.UserID, &rv.CreatedAt, &rv.UpdatedAt)
	return rv, err
}

func (r *reviewsRepo) Get(ctx context.Context, id string) (models.Review, error) {
	rv, err := scanReview(r.pool.QueryRow(ctx,
		`SELECT `+reviewCols+` FROM reviews WHERE id=$1`, id))
	return rv, mapErr(err, "review")
}

func (r *reviewsRepo) GetAll(ctx context.Context) ([]models.Review, error) {
	return r.list(ctx, `SELECT `+reviewCols+` FROM reviews ORDER BY created_at`)
}

func (r *reviewsRepo) ListByPlace(ctx context.Context, placeID string) ([]models.Review, error) {
	return r.list(ctx,
		`SELECT `+reviewCols+` FROM reviews WHERE place_id=$1 ORDER BY created_at`, placeID)
}

func (r *reviewsRepo) list(ctx context.Context, q string, args ...any) ([]models.Review, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *reviewsRepo) ExistsForPlaceAndUser(ctx context.Context, placeID, userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM reviews WHERE place_id=$1 AND user_id=$2)`,
		placeID, userID).Scan(&exists)
	return exists, err
}

func (r *reviewsRepo) Add(ctx context.Context, rv models.Review) (models.Review, error) {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	stored, err := scanReview(r.pool.QueryRow(ctx,
		`INSERT INTO reviews(id, text, rating, place_id, user_id)
		 VALUES($1,$2,$3,$4,$5)
		 RETURNING `+reviewCols,
		rv.ID, rv.Text, rv.Rating, rv.PlaceID, rv.UserID))
	return stored, mapErr(err, "review")
}

// Update never touches place_id or user_id; both are fixed at creation.
func (r *reviewsRepo) Update(ctx context.Context, rv models.Review) (models.Review, error) {
	stored, err := scanReview(r.pool.QueryRow(ctx,
		`UPDATE reviews SET text=$2, rating=$3, updated_at=now() WHERE id=$1 RETURNING `+reviewCols,
		rv.ID, rv.Text, rv.Rating))
	return stored, mapErr(err, "review")
}

func (r *reviewsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	return err
}
