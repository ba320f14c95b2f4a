package store

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/uptrace/bun/dialect"
)

// Identifiers are interpolated into DDL text, so they are restricted to a
// conservative pattern and quoted; types must come from the allowlist below.
var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var columnTypes = map[string]struct{}{
	"VARCHAR": {}, "CHAR": {}, "TEXT": {},
	"SMALLINT": {}, "INT": {}, "INTEGER": {}, "BIGINT": {},
	"REAL": {}, "FLOAT": {}, "NUMERIC": {}, "DECIMAL": {},
	"BOOLEAN": {}, "DATE": {}, "TIMESTAMP": {},
}

func quoteIdent(name string) (string, error) {
	if !identRE.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrBadIdentifier, name)
	}
	return `"` + name + `"`, nil
}

func columnDef(columnType string, size int) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(columnType))
	if _, ok := columnTypes[t]; !ok {
		return "", fmt.Errorf("%w: column type %q", ErrBadIdentifier, columnType)
	}
	if (t == "VARCHAR" || t == "CHAR") && size > 0 {
		return fmt.Sprintf("%s(%d)", t, size), nil
	}
	return t, nil
}

func (s *Store) execDDL(ctx context.Context, stmt string) error {
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("exec ddl: %w", err)
	}
	return nil
}

// AddColumn adds a column to an existing table.
func (s *Store) AddColumn(ctx context.Context, table, column, columnType string, size int) error {
	qt, err := quoteIdent(table)
	if err != nil {
		return err
	}
	qc, err := quoteIdent(column)
	if err != nil {
		return err
	}
	def, err := columnDef(columnType, size)
	if err != nil {
		return err
	}
	return s.execDDL(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", qt, qc, def))
}

// RemoveColumn drops a column from a table.
func (s *Store) RemoveColumn(ctx context.Context, table, column string) error {
	qt, err := quoteIdent(table)
	if err != nil {
		return err
	}
	qc, err := quoteIdent(column)
	if err != nil {
		return err
	}
	return s.execDDL(ctx, fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", qt, qc))
}

// RenameColumn renames a column.
func (s *Store) RenameColumn(ctx context.Context, table, oldName, newName string) error {
	qt, err := quoteIdent(table)
	if err != nil {
		return err
	}
	qo, err := quoteIdent(oldName)
	if err != nil {
		return err
	}
	qn, err := quoteIdent(newName)
	if err != nil {
		return err
	}
	return s.execDDL(ctx, fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s", qt, qo, qn))
}

// ChangeColumnType converts a column to a new type, casting existing values.
// PostgreSQL only.
func (s *Store) ChangeColumnType(ctx context.Context, table, column, newType string) error {
	qt, err := quoteIdent(table)
	if err != nil {
		return err
	}
	qc, err := quoteIdent(column)
	if err != nil {
		return err
	}
	def, err := columnDef(newType, 0)
	if err != nil {
		return err
	}
	return s.execDDL(ctx, fmt.Sprintf(
		"ALTER TABLE %s ALTER COLUMN %s TYPE %s USING %s::%s", qt, qc, def, qc, def))
}

// CreateTable creates a table from a column-name→type mapping. Columns are
// emitted in sorted order so the DDL is deterministic.
func (s *Store) CreateTable(ctx context.Context, table string, columns map[string]string) error {
	qt, err := quoteIdent(table)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		return fmt.Errorf("%w: table %q needs at least one column", ErrBadIdentifier, table)
	}

	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]string, 0, len(names))
	for _, name := range names {
		qc, err := quoteIdent(name)
		if err != nil {
			return err
		}
		def, err := columnDef(columns[name], 0)
		if err != nil {
			return err
		}
		defs = append(defs, qc+" "+def)
	}

	return s.execDDL(ctx, fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (%s)", qt, strings.Join(defs, ", ")))
}

// DropTable deletes a table.
func (s *Store) DropTable(ctx context.Context, table string) error {
	qt, err := quoteIdent(table)
	if err != nil {
		return err
	}
	return s.execDDL(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", qt))
}

// TruncateTable empties a table but keeps its structure.
func (s *Store) TruncateTable(ctx context.Context, table string) error {
	qt, err := quoteIdent(table)
	if err != nil {
		return err
	}
	// sqlite has no TRUNCATE statement
	if s.db.Dialect().Name() == dialect.PG {
		return s.execDDL(ctx, fmt.Sprintf("TRUNCATE TABLE %s", qt))
	}
	return s.execDDL(ctx, fmt.Sprintf("DELETE FROM %s", qt))
}
