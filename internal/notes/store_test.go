package notes_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invkit/recount/internal/notes"
	"github.com/invkit/recount/pkg/errors"
)

func open(t *testing.T) *notes.Store {
	t.Helper()
	s, err := notes.Open(filepath.Join(t.TempDir(), "notes", "review.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUpsertAndGet(t *testing.T) {
	s := open(t)
	ctx := context.Background()

	n := notes.Note{
		SessionID: "s-1", Warehouse: "50", Item: "itm-1", Lot: "L1",
		Location: "A01", Status: "open", Author: "pat",
		Text: "recount scheduled for Tuesday",
	}
	require.NoError(t, s.Upsert(ctx, n))

	got, err := s.Get(ctx, "s-1", "50", "itm-1", "L1", "A01")
	require.NoError(t, err)
	assert.Equal(t, "recount scheduled for Tuesday", got.Text)
	assert.Equal(t, "open", got.Status)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestUpsertReplacesExisting(t *testing.T) {
	s := open(t)
	ctx := context.Background()

	n := notes.Note{SessionID: "s-1", Warehouse: "50", Item: "itm-1", Location: "A01", Text: "first"}
	require.NoError(t, s.Upsert(ctx, n))

	n.Text = "second"
	n.Status = "resolved"
	require.NoError(t, s.Upsert(ctx, n))

	got, err := s.Get(ctx, "s-1", "50", "itm-1", "", "A01")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Text)
	assert.Equal(t, "resolved", got.Status)

	all, err := s.Session(ctx, "s-1")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetMissing(t *testing.T) {
	s := open(t)

	_, err := s.Get(context.Background(), "s-1", "50", "itm-1", "", "A01")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestSessionOrderingAndIsolation(t *testing.T) {
	s := open(t)
	ctx := context.Background()

	for _, n := range []notes.Note{
		{SessionID: "s-1", Warehouse: "50", Item: "itm-2", Location: "A01", Text: "b"},
		{SessionID: "s-1", Warehouse: "50", Item: "itm-1", Location: "B02", Text: "a"},
		{SessionID: "s-2", Warehouse: "50", Item: "itm-9", Location: "Z9", Text: "other session"},
	} {
		require.NoError(t, s.Upsert(ctx, n))
	}

	got, err := s.Session(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "itm-1", got[0].Item)
	assert.Equal(t, "itm-2", got[1].Item)
}

func TestDelete(t *testing.T) {
	s := open(t)
	ctx := context.Background()

	n := notes.Note{SessionID: "s-1", Warehouse: "50", Item: "itm-1", Location: "A01", Text: "x"}
	require.NoError(t, s.Upsert(ctx, n))
	require.NoError(t, s.Delete(ctx, "s-1", "50", "itm-1", "", "A01"))

	_, err := s.Get(ctx, "s-1", "50", "itm-1", "", "A01")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, s.Delete(ctx, "s-1", "50", "itm-1", "", "A01"))
}

func TestUpsertValidatesKey(t *testing.T) {
	s := open(t)

	err := s.Upsert(context.Background(), notes.Note{SessionID: "s-1"})
	assert.Error(t, err)
}
