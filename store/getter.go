package store

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/openfightdb/fighterapi/models"
)

// byConds runs the chosen projection filtered by the predicate list. The
// caller is responsible for validating filter-supplied columns via BuildWhere;
// internal lookups pass compile-time-known columns directly. Reads take no
// lock; the locked read-modify-write path lives in update.
func (s *Store) byConds(ctx context.Context, idb bun.IDB, p Projection, conds []Cond) ([]models.Fighter, error) {
	var fighters []models.Fighter
	q := p.apply(idb.NewSelect().Model(&fighters))
	for _, c := range conds {
		q = q.Where("f.? = ?", bun.Ident(c.Column), c.Value)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("select fighters: %w", err)
	}
	if len(fighters) == 0 {
		return nil, ErrNotFound
	}
	return fighters, nil
}

// List returns every fighter in the chosen projection.
func (s *Store) List(ctx context.Context, p Projection) ([]models.Fighter, error) {
	var fighters []models.Fighter
	if err := p.apply(s.db.NewSelect().Model(&fighters)).Scan(ctx); err != nil {
		return nil, fmt.Errorf("list fighters: %w", err)
	}
	if len(fighters) == 0 {
		return nil, ErrNotFound
	}
	return fighters, nil
}

// ByID fetches one fighter by primary key.
func (s *Store) ByID(ctx context.Context, p Projection, id int) (*models.Fighter, error) {
	fighters, err := s.byConds(ctx, s.db, p, []Cond{{"fighter_id", id}})
	if err != nil {
		return nil, err
	}
	return &fighters[0], nil
}

// ByCountry fetches all fighters from one country.
func (s *Store) ByCountry(ctx context.Context, p Projection, country string) ([]models.Fighter, error) {
	return s.byConds(ctx, s.db, p, []Cond{{"country", country}})
}

// ByNames fetches one fighter by the (name, nickname, surname) natural key.
func (s *Store) ByNames(ctx context.Context, p Projection, name, nickname, surname string) (*models.Fighter, error) {
	conds := []Cond{
		{"name", name},
		{"nickname", nickname},
		{"surname", surname},
	}
	fighters, err := s.byConds(ctx, s.db, p, conds)
	if err != nil {
		return nil, err
	}
	return &fighters[0], nil
}

// Search fetches fighters matching a filter object. An empty filter matches
// every row; an unknown filter column fails before any query runs.
func (s *Store) Search(ctx context.Context, p Projection, filter *FighterFilter) ([]models.Fighter, error) {
	conds, err := BuildWhere(filter.Conds())
	if err != nil {
		return nil, err
	}
	return s.byConds(ctx, s.db, p, conds)
}

// TopByField ranks fighters by the named column, descending unless asc is
// set, capped at limit. Under the base projection only fighters-owned columns
// are orderable.
func (s *Store) TopByField(ctx context.Context, p Projection, field string, limit int, asc bool) ([]models.Fighter, error) {
	t, err := resolveField(field)
	if err != nil {
		return nil, err
	}
	if p == Base && t.name != "fighters" {
		return nil, fmt.Errorf("%w: %q in base projection", ErrUnknownColumn, field)
	}

	dir := "DESC"
	if asc {
		dir = "ASC"
	}

	var fighters []models.Fighter
	q := p.apply(s.db.NewSelect().Model(&fighters)).
		OrderExpr("?.? ?", bun.Ident(t.alias), bun.Ident(field), bun.Safe(dir)).
		Limit(limit)
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("top fighters by %s: %w", field, err)
	}
	if len(fighters) == 0 {
		return nil, ErrNotFound
	}
	return fighters, nil
}
