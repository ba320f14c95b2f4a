package store

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/openfightdb/fighterapi/models"
)

// Create inserts a new fighter. Under the extended projection any nested
// stats payloads are split into their per-table rows inside the same
// transaction, so the whole aggregate lands or nothing does.
func (s *Store) Create(ctx context.Context, p Projection, in *ExtendedFighterFilter) (*models.Fighter, error) {
	f := in.FighterFilter.model()
	f.LastUpdated = today()

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(f).Exec(ctx); err != nil {
			return fmt.Errorf("insert fighter: %w", err)
		}
		if p == Extended {
			return upsertExtensions(ctx, tx, f.FighterID, in)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// CreateMany inserts a batch of fighters in one transaction and returns one
// success flag per input. Any failure aborts the whole batch.
func (s *Store) CreateMany(ctx context.Context, p Projection, ins []ExtendedFighterFilter) ([]bool, error) {
	flags := make([]bool, 0, len(ins))
	if len(ins) == 0 {
		return flags, nil
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for i := range ins {
			f := ins[i].FighterFilter.model()
			f.LastUpdated = today()
			if _, err := tx.NewInsert().Model(f).Exec(ctx); err != nil {
				return fmt.Errorf("insert fighter %d: %w", i, err)
			}
			if p == Extended {
				if err := upsertExtensions(ctx, tx, f.FighterID, &ins[i]); err != nil {
					return err
				}
			}
			flags = append(flags, true)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return flags, nil
}

// UpdateByID patches a fighter by primary key.
func (s *Store) UpdateByID(ctx context.Context, p Projection, id int, patch *ExtendedFighterFilter) error {
	return s.update(ctx, p, []Cond{{"fighter_id", id}}, patch)
}

// UpdateByNames patches a fighter addressed by the natural key.
func (s *Store) UpdateByNames(ctx context.Context, p Projection, name, nickname, surname string, patch *ExtendedFighterFilter) error {
	conds := []Cond{
		{"name", name},
		{"nickname", nickname},
		{"surname", surname},
	}
	return s.update(ctx, p, conds, patch)
}

// update is the locked read-modify-write path: the target row is locked at
// read time and held until commit so two concurrent patches serialize instead
// of silently overwriting each other. Only fields present in the patch are
// written.
func (s *Store) update(ctx context.Context, p Projection, conds []Cond, patch *ExtendedFighterFilter) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var fighters []models.Fighter
		q := tx.NewSelect().Model(&fighters)
		for _, c := range conds {
			q = q.Where("f.? = ?", bun.Ident(c.Column), c.Value)
		}
		if err := s.lockFighters(q).Scan(ctx); err != nil {
			return fmt.Errorf("select fighter for update: %w", err)
		}
		if len(fighters) == 0 {
			return ErrNotFound
		}

		f := &fighters[0]
		cols := patch.FighterFilter.apply(f)
		f.LastUpdated = today()
		cols = append(cols, "last_updated")

		if _, err := tx.NewUpdate().Model(f).Column(cols...).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("update fighter: %w", err)
		}
		if p == Extended {
			return upsertExtensions(ctx, tx, f.FighterID, patch)
		}
		return nil
	})
}

// upsertExtensions writes the nested stats payloads that are present,
// replacing an existing row for the fighter wholesale.
func upsertExtensions(ctx context.Context, idb bun.IDB, fighterID int, in *ExtendedFighterFilter) error {
	now := today()

	if in.BaseStats != nil {
		_, err := idb.NewInsert().Model(in.BaseStats.model(fighterID, now)).
			On(`CONFLICT (fighter_id) DO UPDATE SET
				weight = EXCLUDED.weight, height = EXCLUDED.height,
				reach = EXCLUDED.reach, age = EXCLUDED.age,
				last_updated = EXCLUDED.last_updated`).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("upsert base_stats: %w", err)
		}
	}

	if in.ExtendedStats != nil {
		_, err := idb.NewInsert().Model(in.ExtendedStats.model(fighterID, now)).
			On(`CONFLICT (fighter_id) DO UPDATE SET
				stance = EXCLUDED.stance, slpm = EXCLUDED.slpm,
				str_acc = EXCLUDED.str_acc, sapm = EXCLUDED.sapm,
				str_def = EXCLUDED.str_def, td_avg = EXCLUDED.td_avg,
				td_acc = EXCLUDED.td_acc, td_def = EXCLUDED.td_def,
				sub_avg = EXCLUDED.sub_avg, last_updated = EXCLUDED.last_updated`).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("upsert extended_stats: %w", err)
		}
	}

	if in.FightsResults != nil {
		_, err := idb.NewInsert().Model(in.FightsResults.model(fighterID, now)).
			On(`CONFLICT (fighter_id) DO UPDATE SET
				win_by_ko_tko = EXCLUDED.win_by_ko_tko, loss_by_ko_tko = EXCLUDED.loss_by_ko_tko,
				win_by_sub = EXCLUDED.win_by_sub, loss_by_sub = EXCLUDED.loss_by_sub,
				win_by_dec = EXCLUDED.win_by_dec, loss_by_dec = EXCLUDED.loss_by_dec,
				non_contest = EXCLUDED.non_contest, last_updated = EXCLUDED.last_updated`).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("upsert fights_results: %w", err)
		}
	}

	return nil
}

// DeleteByID removes a fighter; the cascade removes its extension rows.
func (s *Store) DeleteByID(ctx context.Context, id int) error {
	res, err := s.db.NewDelete().Model((*models.Fighter)(nil)).
		Where("fighter_id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete fighter %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByIDs removes all listed fighters in one statement and reports the
// rows affected. An empty list is a no-op that issues no query.
func (s *Store) DeleteByIDs(ctx context.Context, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.db.NewDelete().Model((*models.Fighter)(nil)).
		Where("fighter_id IN (?)", bun.In(ids)).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete fighters: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
