package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndRemoveColumn(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddColumn(ctx, "fighters", "notes", "VARCHAR", 100))
	_, err := s.db.ExecContext(ctx, "SELECT notes FROM fighters")
	require.NoError(t, err)

	require.NoError(t, s.RemoveColumn(ctx, "fighters", "notes"))
	_, err = s.db.ExecContext(ctx, "SELECT notes FROM fighters")
	assert.Error(t, err)
}

func TestRenameColumn(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddColumn(ctx, "fighters", "notes", "TEXT", 0))
	require.NoError(t, s.RenameColumn(ctx, "fighters", "notes", "remarks"))

	_, err := s.db.ExecContext(ctx, "SELECT remarks FROM fighters")
	require.NoError(t, err)
}

func TestDDLRejectsBadIdentifiers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.AddColumn(ctx, "fighters; DROP TABLE users", "x", "TEXT", 0), ErrBadIdentifier)
	assert.ErrorIs(t, s.AddColumn(ctx, "fighters", `x" TEXT; --`, "TEXT", 0), ErrBadIdentifier)
	assert.ErrorIs(t, s.AddColumn(ctx, "fighters", "x", "BLOBBY", 0), ErrBadIdentifier)
	assert.ErrorIs(t, s.RemoveColumn(ctx, "", "x"), ErrBadIdentifier)
	assert.ErrorIs(t, s.DropTable(ctx, "fighters cascade"), ErrBadIdentifier)
}

func TestCreateAndDropTable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cols := map[string]string{"label": "VARCHAR", "amount": "INTEGER"}
	require.NoError(t, s.CreateTable(ctx, "scratch", cols))

	_, err := s.db.ExecContext(ctx, "INSERT INTO scratch (label, amount) VALUES ('a', 1)")
	require.NoError(t, err)

	require.NoError(t, s.DropTable(ctx, "scratch"))
	_, err = s.db.ExecContext(ctx, "SELECT * FROM scratch")
	assert.Error(t, err)

	assert.ErrorIs(t, s.CreateTable(ctx, "empty", nil), ErrBadIdentifier)
}

func TestTruncateTable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedFighter(t, s, "Gone", "X", "Lightweight", 1, 0, 25)
	require.NoError(t, s.TruncateTable(ctx, "fighters"))

	_, err := s.List(ctx, Base)
	assert.ErrorIs(t, err, ErrNotFound)
}
