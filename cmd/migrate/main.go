package main

import (
	"log"

	"ai-querychat-be/internal/config"
	"ai-querychat-be/internal/repository/store"
	"ai-querychat-be/pkg/database"
)

// migrate creates the users and messages tables for the SQL drivers. The
// mongo driver builds its indexes on startup and needs no migration.
func main() {
	cfg := config.Load()

	switch cfg.Database.Driver {
	case config.StorePostgres, config.StoreMySQL:
	default:
		log.Fatalf("Error: STORE_DRIVER must be %q or %q to migrate, got %q",
			config.StorePostgres, config.StoreMySQL, cfg.Database.Driver)
	}
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	defer database.Close(db)

	log.Printf("Running AutoMigrate on %s...", cfg.Database.Driver)
	if err := store.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migration completed")
}
