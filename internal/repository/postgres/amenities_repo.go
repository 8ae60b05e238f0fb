package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecavus/stayhub-backend/internal/models"
	"github.com/ecavus/stayhub-backend/internal/repository"
)

type amenitiesRepo struct{ pool *pgxpool.Pool }

func NewAmenities(pool *pgxpool.Pool) repository.Amenities {
	return &amenitiesRepo{pool: pool}
}

const amenityCols = `id, name, created_at, updated_at`

func scanAmenity(row interface{ Scan(...any) error }) (models.Amenity, error) {
	var a models.Amenity
	err := row.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *amenitiesRepo) Get(ctx context.Context, id string) (models.Amenity, error) {
	a, err := scanAmenity(r.pool.QueryRow(ctx,
		`SELECT `+amenityCols+` FROM amenities WHERE id=$1`, id))
	return a, mapErr(err, "amenity")
}

func (r *amenitiesRepo) GetByName(ctx context.Context, name string) (models.Amenity, error) {
	a, err := scanAmenity(r.pool.QueryRow(ctx,
		`SELECT `+amenityCols+` FROM amenities WHERE name=$1`, name))
	return a, mapErr(err, "amenity")
}

func (r *amenitiesRepo) GetAll(ctx context.Context) ([]models.Amenity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+amenityCols+` FROM amenities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Amenity
	for rows.Next() {
		a, err := scanAmenity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *amenitiesRepo) Add(ctx context.Context, a models.Amenity) (models.Amenity, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	stored, err := scanAmenity(r.pool.QueryRow(ctx,
		`INSERT INTO amenities(id, name) VALUES($1,$2) RETURNING `+amenityCols,
		a.ID, a.Name))
	return stored, mapErr(err, "amenity")
}

func (r *amenitiesRepo) Update(ctx context.Context, a models.Amenity) (models.Amenity, error) {
	stored, err := scanAmenity(r.pool.QueryRow(ctx,
		`UPDATE amenities SET name=$2, updated_at=now() WHERE id=$1 RETURNING `+amenityCols,
		a.ID, a.Name))
	return stored, mapErr(err, "amenity")
}

func (r *amenitiesRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM amenities WHERE id=$1`, id)
	return err
}
