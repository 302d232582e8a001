package seeders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"rtub-system/internal/claims"
)

func seedRoles(ctx context.Context, db *pgxpool.Pool) error {
	roles := []string{claims.RoleOwner, claims.RoleAdmin, claims.RoleMember}
	for _, role := range roles {
		_, err := db.Exec(ctx,
			`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, role)
		if err != nil {
			return err
		}
	}
	return nil
}
