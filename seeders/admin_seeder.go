package seeders

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"rtub-system/internal/claims"
)

// seedAdmin creates (or leaves alone) the bootstrap owner account. Password
// comes from ADMIN_PASSWORD; the default is only for local development.
func seedAdmin(ctx context.Context, db *pgxpool.Pool) error {
	email := getEnvDefault("ADMIN_EMAIL", "admin@rtub.local")
	password := getEnvDefault("ADMIN_PASSWORD", "changeme123")

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var memberID uint64
	err = db.QueryRow(ctx,
		`INSERT INTO members (full_name, email, password, is_founder, is_active, created_at, updated_at)
		 VALUES ('Administrator', $1, $2, FALSE, TRUE, NOW(), NOW())
		 ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		 RETURNING id`,
		email, string(hashed)).Scan(&memberID)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx,
		`INSERT INTO member_roles (member_id, role_id)
		 SELECT $1, id FROM roles WHERE name = $2
		 ON CONFLICT DO NOTHING`,
		memberID, claims.RoleOwner)
	return err
}

func getEnvDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
