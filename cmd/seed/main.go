// Command seed resets the events table and loads the demo records.
// Intended for local development; it drops existing data.
package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"lpt-event/internal/config"
	eventdb "lpt-event/internal/events/db"
	"lpt-event/internal/models"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}
	cfg := config.Load()

	var sqldb *sql.DB
	var bunDB *bun.DB
	var err error

	if cfg.Database.Driver == "postgres" {
		sqldb, err = sql.Open("postgres", cfg.Database.PostgresDSN)
		if err == nil {
			err = sqldb.PingContext(ctx)
		}
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		bunDB = bun.NewDB(sqldb, pgdialect.New())
	} else {
		sqldb, err = sql.Open("sqlite", cfg.Database.SQLiteDSN)
		if err == nil {
			err = sqldb.PingContext(ctx)
		}
		if err != nil {
			log.Fatalf("Failed to connect to SQLite: %v", err)
		}
		bunDB = bun.NewDB(sqldb, sqlitedialect.New())
	}
	defer bunDB.Close()

	log.Println("Dropping events table...")
	if _, err := bunDB.NewDropTable().Model((*models.Event)(nil)).IfExists().Exec(ctx); err != nil {
		log.Fatalf("Failed to drop events table: %v", err)
	}

	db := &eventdb.DB{Bun: bunDB}

	log.Println("Creating events table...")
	if err := db.CreateSchema(ctx); err != nil {
		log.Fatalf("Failed to create events table: %v", err)
	}

	log.Println("Seeding demo events...")
	if _, err := db.SeedDemoEvents(ctx); err != nil {
		log.Fatalf("Failed to seed demo events: %v", err)
	}

	log.Println("Done.")
}
