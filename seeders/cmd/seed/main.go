package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"rtub-system/pkg/config"
	"rtub-system/pkg/database/postgresql"
	"rtub-system/seeders"
)

func main() {
	runMigrations := flag.Bool("migrate", false, "apply pending migrations before seeding")
	runCore := flag.Bool("core", false, "seed roles and the bootstrap owner account")
	flag.Parse()

	if !*runMigrations && !*runCore {
		log.Println("nothing selected; available flags:")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()

	if *runMigrations {
		db, err := sql.Open("pgx", cfg.Postgres.DSN)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatalf("failed to set goose dialect: %v", err)
		}
		if err := goose.Up(db, "migrations"); err != nil {
			log.Fatalf("failed to apply migrations: %v", err)
		}
		db.Close()
		log.Println("migrations applied")
	}

	if *runCore {
		pool := postgresql.ConnectDB(cfg.Postgres.DSN)
		defer pool.Close()
		seeders.SeedCore(pool)
	}
}
