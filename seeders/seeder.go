package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCore fills the role dictionary and creates the bootstrap owner.
func SeedCore(db *pgxpool.Pool) {
	ctx := context.Background()

	if err := seedRoles(ctx, db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}
	if err := seedAdmin(ctx, db); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	log.Println("core seed finished")
}
