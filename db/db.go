package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/openfightdb/fighterapi/config"
	"github.com/openfightdb/fighterapi/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

// CreateTables creates all tables in dependency order. The three stats tables
// carry an ON DELETE CASCADE foreign key back to fighters so removing a
// fighter removes its extension rows.
func CreateTables(ctx context.Context, db *bun.DB) error {
	plain := []interface{}{
		(*models.User)(nil),
		(*models.Fighter)(nil),
	}
	for _, model := range plain {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	extensions := []interface{}{
		(*models.BaseStats)(nil),
		(*models.ExtendedStats)(nil),
		(*models.FightsResults)(nil),
	}
	for _, model := range extensions {
		_, err := db.NewCreateTable().Model(model).IfNotExists().
			ForeignKey(`("fighter_id") REFERENCES "fighters" ("fighter_id") ON DELETE CASCADE`).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	return nil
}
