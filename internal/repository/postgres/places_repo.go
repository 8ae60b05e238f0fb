package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecavus/stayhub-backend/internal/models"
	"github.com/ecavus/stayhub-backend/internal/repository"
)

type placesRepo struct{ pool *pgxpool.Pool }

func NewPlaces(pool *pgxpool.Pool) repository.Places {
	return &placesRepo{pool: pool}
}

const placeCols = `id, title, description, price, latitude, longitude, owner_id, created_at, updated_at`

func scanPlace(row interface{ Scan(...any) error }) (models.Place, error) {
	var p models.Place
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Latitude, &p.Longitude, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *placesRepo) Get(ctx context.Context, id string) (models.Place, error) {
	p, err := scanPlace(r.pool.QueryRow(ctx,
		`SELECT `+placeCols+` FROM places WHERE id=$1`, id))
	return p, mapErr(err, "place")
}

func (r *placesRepo) GetAll(ctx context.Context) ([]models.Place, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+placeCols+` FROM places ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *placesRepo) Add(ctx context.Context, p models.Place) (models.Place, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	stored, err := scanPlace(r.pool.QueryRow(ctx,
		`INSERT INTO places(id, title, description, price, latitude, longitude, owner_id)
		 VALUES($1,$2,$3,$4,$5,$6,$7)
		 RETURNING `+placeCols,
		p.ID, p.Title, p.Description, p.Price, p.Latitude, p.Longitude, p.OwnerID))
	return stored, mapErr(err, "place")
}

// Update never touches owner_id; the owner is fixed at creation.
func (r *placesRepo) Update(ctx context.Context, p models.Place) (models.Place, error) {
	stored, err := scanPlace(r.pool.QueryRow(ctx,
		`UPDATE places
		    SET title=$2, description=$3, price=$4, latitude=$5, longitude=$6, updated_at=now()
		  WHERE id=$1
		 RETURNING `+placeCols,
		p.ID, p.Title, p.Description, p.Price, p.Latitude, p.Longitude))
	return stored, mapErr(err, "place")
}

func (r *placesRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM places WHERE id=$1`, id)
	return err
}

func (r *placesRepo) AttachAmenity(ctx context.Context, placeID, amenityID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO place_amenities(place_id, amenity_id) VALUES($1,$2)
		 ON CONFLICT (place_id, amenity_id) DO NOTHING`,
		placeID, amenityID)
	return err
}

func (r *placesRepo) ListAmenities(ctx context.Context, placeID string) ([]models.Amenity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.name, a.created_at, a.updated_at
		   FROM amenities a
		   JOIN place_amenities pa ON pa.amenity_id = a.id
		  WHERE pa.place_id = $1
		  ORDER BY a.name`,
		placeID)
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
