package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/savethegov/govbudget/internal/adapter/persistence"
	"github.com/savethegov/govbudget/internal/config"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		dsn = cfg.GetDatabaseURL()
	}

	db, err := persistence.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	if err := persistence.Migrate(context.Background(), db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("Migration completed successfully")
}
