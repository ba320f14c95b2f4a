// Package store implements the query layer over the fighter aggregate:
// predicate building from filter objects, base/extended projections, field
// ownership resolution for cross-table aggregates, and the read/write
// services built on top of them.
package store

import (
	"errors"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

var (
	// ErrNotFound signals an empty result set, distinct from query failure.
	ErrNotFound = errors.New("fighter not found")
	// ErrUnknownColumn is a client configuration error: the named field does
	// not exist on any queried table.
	ErrUnknownColumn = errors.New("column does not exist")
	// ErrBadIdentifier rejects table/column names or types that fail the DDL
	// allowlist.
	ErrBadIdentifier = errors.New("invalid identifier")
)

// Store runs all fighter, user and DDL queries against one bun database.
type Store struct {
	db *bun.DB
}

func New(db *bun.DB) *Store {
	return &Store{db: db}
}

const dateLayout = "2006-01-02"

func today() string {
	return time.Now().UTC().Format(dateLayout)
}

// lockFighters acquires a row lock on the fighters rows of a select so a
// read-then-update flow cannot lose a concurrent update. SQLite has no FOR
// UPDATE; its single-writer connection serializes the same flow.
func (s *Store) lockFighters(q *bun.SelectQuery) *bun.SelectQuery {
	if s.db.Dialect().Name() == dialect.PG {
		return q.For("UPDATE OF f")
	}
	return q
}
