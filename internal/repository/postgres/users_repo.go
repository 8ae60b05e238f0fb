// internal/repository/postgres/users_repo.go
package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecavus/stayhub-backend/internal/models"
	"github.com/ecavus/stayhub-backend/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repository.Users {
	return &usersRepo{pool: pool}
}

const userCols = `id, first_name, last_name, email, password_hash, is_admin, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *usersRepo) Get(ctx context.Context, id string) (models.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id=$1`, id))
	return u, mapErr(err, "user")
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email=$1`, email))
	return u, mapErr(err, "user")
}

func (r *usersRepo) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userCols+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) Add(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	stored, err := scanUser(r.pool.QueryRow(ctx,
		`INSERT INTO users(id, first_name, last_name, email, password_hash, is_admin)
		 VALUES($1,$2,$3,$4,$5,$6)
		 RETURNING `+userCols,
		u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.IsAdmin))
	return stored, mapErr(err, "user")
}

func (r *usersRepo) Update(ctx context.Context, u models.User) (models.User, error) {
	stored, err := scanUser(r.pool.QueryRow(ctx,
		`UPDATE users
		    SET first_name=$2, last_name=$3, email=$4, password_hash=$5, is_admin=$6, updated_at=now()
		  WHERE id=$1
		 RETURNING `+userCols,
		u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.IsAdmin))
	return stored, mapErr(err, "user")
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	return err
}
