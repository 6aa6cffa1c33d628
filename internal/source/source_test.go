package source_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagebind/internal/source"
)

func TestQuery_Validate(t *testing.T) {
	require.NoError(t, source.Query{Offset: 0, Limit: 5}.Validate())
	require.ErrorIs(t, source.Query{Offset: -1, Limit: 5}.Validate(), source.ErrInvalidOffset)
	require.ErrorIs(t, source.Query{Limit: 0}.Validate(), source.ErrInvalidLimit)
}

func TestPageOf(t *testing.T) {
	assert.Equal(t, 1, source.PageOf(0, 5))
	assert.Equal(t, 2, source.PageOf(5, 5))
	assert.Equal(t, 3, source.PageOf(14, 5))
	assert.Equal(t, 1, source.PageOf(14, 0))
}

func TestMemory_Fetch(t *testing.T) {
	ctx := context.Background()
	m := source.NewMemory(12, 0)

	first, err := m.Fetch(ctx, source.Query{Offset: 0, Limit: 5})
	require.NoError(t, err)
	require.Len(t, first, 5)
	assert.Equal(t, "Page : 1", first[0].Title)
	assert.Equal(t, "page element number :- #1", first[0].Subtitle)
	assert.Equal(t, 1, first[0].ID)

	last, err := m.Fetch(ctx, source.Query{Offset: 10, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, last, 2, "capped at MaxItems")
	assert.Equal(t, "Page : 3", last[0].Title)

	dry, err := m.Fetch(ctx, source.Query{Offset: 12, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, dry)
	assert.NotNil(t, dry)
}

func TestMemory_FetchSorted(t *testing.T) {
	m := source.NewMemory(10, 0)

	var ids []int
	for _, offset := range []int{0, 5} {
		items, err := m.Fetch(context.Background(), source.Query{
			Offset: offset, Limit: 5, SortField: "id", SortOrder: source.SortOrderDesc,
		})
		require.NoError(t, err)
		require.Len(t, items, 5)
		for _, it := range items {
			ids = append(ids, it.ID)
		}
	}
	assert.Equal(t, []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, ids, "pages follow one order across the feed")
}

func TestMemory_FetchSortedPartialLastPage(t *testing.T) {
	m := source.NewMemory(7, 0)

	items, err := m.Fetch(context.Background(), source.Query{
		Offset: 5, Limit: 5, SortField: "id", SortOrder: source.SortOrderDesc,
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, []int{items[0].ID, items[1].ID})
	assert.Equal(t, "page element number :- #2", items[0].Subtitle)
}

func TestMemory_FetchHonoursContext(t *testing.T) {
	m := source.NewMemory(10, time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.Fetch(ctx, source.Query{Limit: 5})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSQLite_FetchPages(t *testing.T) {
	ctx := context.Background()
	db, err := source.OpenSQLite(filepath.Join(t.TempDir(), "items.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Seed(ctx, 12, 5))
	require.NoError(t, db.Seed(ctx, 99, 5), "seeding twice is a no-op")

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.Equal(t, "sqlite:items.db", db.Name())

	var total []source.Item
	for offset := 0; ; offset += 5 {
		page, fetchErr := db.Fetch(ctx, source.Query{Offset: offset, Limit: 5})
		require.NoError(t, fetchErr)
		if len(page) == 0 {
			break
		}
		total = append(total, page...)
	}
	require.Len(t, total, 12)
	assert.Equal(t, "Row 1", total[0].Title)
	assert.Equal(t, 3, total[11].Page)
}

func TestSQLite_FetchSorted(t *testing.T) {
	ctx := context.Background()
	db, err := source.OpenSQLite(filepath.Join(t.TempDir(), "items.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Insert(ctx, []source.Item{
		{Title: "b"}, {Title: "c"}, {Title: "a"},
	}))

	items, err := db.Fetch(ctx, source.Query{Limit: 10, SortField: "title", SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "c", items[0].Title)
	assert.Equal(t, "a", items[2].Title)

	_, err = db.Fetch(ctx, source.Query{Limit: 10, SortField: "id; DROP TABLE items"})
	require.ErrorIs(t, err, source.ErrInvalidSortField)
}
