// cmd/seed/main.go
// Resets the fighter tables and loads JSON fixtures from a directory.
//
// Usage:
//
//	go run ./cmd/seed -dir ./fixtures
//
// Expects fighters.json, base_stats.json, extended_stats.json and
// fights_results.json, each a JSON array of rows.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/openfightdb/fighterapi/config"
	bundb "github.com/openfightdb/fighterapi/db"
	"github.com/openfightdb/fighterapi/models"
)

const batchSize = 500

func main() {
	dir := flag.String("dir", "fixtures", "directory holding the JSON fixture files")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	if err := resetTables(ctx, db); err != nil {
		log.Fatalf("reset tables: %v", err)
	}

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"fighters", func() (int, error) { return loadFile[models.Fighter](ctx, db, *dir, "fighters.json") }},
		{"base_stats", func() (int, error) { return loadFile[models.BaseStats](ctx, db, *dir, "base_stats.json") }},
		{"extended_stats", func() (int, error) { return loadFile[models.ExtendedStats](ctx, db, *dir, "extended_stats.json") }},
		{"fights_results", func() (int, error) { return loadFile[models.FightsResults](ctx, db, *dir, "fights_results.json") }},
	}

	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			log.Fatalf("seed %s: %v", s.name, err)
		}
		log.Printf("%-15s  %d rows loaded", s.name, n)
	}

	log.Println("seed complete")
}

// resetTables empties the fighter tables. The cascade on fighters clears the
// extension tables with it.
func resetTables(ctx context.Context, db *bun.DB) error {
	if db.Dialect().Name() == dialect.PG {
		_, err := db.ExecContext(ctx, "TRUNCATE TABLE fighters RESTART IDENTITY CASCADE")
		return err
	}
	_, err := db.ExecContext(ctx, "DELETE FROM fighters")
	return err
}

func loadFile[T any](ctx context.Context, db *bun.DB, dir, name string) (int, error) {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return 0, err
	}
	var rows []T
	if err := json.Unmarshal(raw, &rows); err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}

	total := 0
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]
		if _, err := db.NewInsert().Model(&batch).Exec(ctx); err != nil {
			return total, err
		}
		total += len(batch)
	}
	return total, nil
}
