package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/ecavus/stayhub-backend/internal/repository"
)

type Repositories struct {
	Users     repo.Users
	Amenities repo.Amenities
	Places    repo.Places
	Reviews   repo.Reviews
	AuditLogs repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:     &usersRepo{pool},
		Amenities: &amenitiesRepo{pool},
		Places:    &placesRepo{pool},
		Reviews:   &reviewsRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
	}
}
