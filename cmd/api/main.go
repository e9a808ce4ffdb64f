package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"goglm/adapters/excel"
	"goglm/adapters/postgres"
	"goglm/domain/dataset"
	"goglm/internal"
	"goglm/internal/config"
	"goglm/internal/errors"
	"goglm/ports"
	"goglm/ui"
)

func main() {
	// Load .env file if present (development convenience)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var modelRepo ports.ModelRepository
	if cfg.Database.URL != "" {
		db, err := initDatabase(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		modelRepo = postgres.NewModelRepository(db)
		logger.Info("model registry enabled")
	} else {
		logger.Warn("DATABASE_URL not set; model registry endpoints disabled")
	}

	var table *dataset.Table
	if cfg.Data.File != "" {
		table, err = excel.NewDataReader(cfg.Data.File).Read()
		if err != nil {
			log.Fatalf("Failed to load dataset %s: %v", cfg.Data.File, err)
		}
		logger.Info("loaded dataset %s: %d rows", cfg.Data.File, table.RowCount)
	}

	app := ui.NewApp(logger, modelRepo, table)
	if err := app.Serve(ui.Config{Port: cfg.Server.Port}); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// initDatabase initializes the PostgreSQL database connection
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	if err := postgres.Migrate(db); err != nil {
		return nil, errors.Wrap(err, "failed to run migrations")
	}
	return db, nil
}
