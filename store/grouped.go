package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// GroupedStat is one row of a grouped-aggregate query: the grouping key, the
// aggregate over the value column, and the group size.
type GroupedStat struct {
	Group any     `bun:"grp" json:"group"`
	Stat  float64 `bun:"stat" json:"stat"`
	Count int     `bun:"cnt" json:"count"`
}

var aggregateFuncs = map[string]string{
	"avg":   "AVG",
	"sum":   "SUM",
	"min":   "MIN",
	"max":   "MAX",
	"count": "COUNT",
}

// GroupedStat resolves the owners of the key and value columns, joins them on
// fighter_id (self-joining under an alias when both live in one table),
// groups by the key, and aggregates the value. Groups with a single member
// are suppressed; rows come back ordered by the aggregate descending.
func (s *Store) GroupedStat(ctx context.Context, keyField, valueField, agg string) ([]GroupedStat, error) {
	kt, err := resolveField(keyField)
	if err != nil {
		return nil, err
	}
	vt, err := resolveField(valueField)
	if err != nil {
		return nil, err
	}
	fn, ok := aggregateFuncs[strings.ToLower(agg)]
	if !ok {
		return nil, fmt.Errorf("%w: aggregate %q", ErrBadIdentifier, agg)
	}

	// fn comes from the fixed allowlist above, so inlining it is safe. A ?
	// placeholder directly before "(" reads as a named template param and
	// would pass through unsubstituted.
	q := s.db.NewSelect().
		TableExpr("? AS t1", bun.Ident(kt.name)).
		ColumnExpr("t1.? AS grp", bun.Ident(keyField)).
		ColumnExpr(fn+"(t2.?) AS stat", bun.Ident(valueField)).
		ColumnExpr("COUNT(t1.fighter_id) AS cnt").
		Join("JOIN ? AS t2 ON t2.fighter_id = t1.fighter_id", bun.Ident(vt.name)).
		GroupExpr("t1.?", bun.Ident(keyField)).
		Having("COUNT(t1.fighter_id) > 1").
		OrderExpr(fn+"(t2.?) DESC", bun.Ident(valueField))

	var rows []GroupedStat
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("grouped %s of %s by %s: %w", agg, valueField, keyField, err)
	}
	return rows, nil
}
