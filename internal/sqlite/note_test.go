package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/personalos/internal/domain/note"
)

func TestNoteRepository_GetDailyNote(t *testing.T) {
	db := NewTestDB(t)
	repo := NewNoteRepository(db)
	ctx := context.Background()

	_, err := repo.Add(ctx, note.Note{Title: "general", Type: note.TypeGeneral, Date: "2024-06-01", Tags: []string{}})
	require.NoError(t, err)
	first, err := repo.Add(ctx, note.Note{Title: "Daily Note: Jun 1", Type: note.TypeDaily, Date: "2024-06-01", Tags: []string{"daily"}})
	require.NoError(t, err)
	_, err = repo.Add(ctx, note.Note{Title: "duplicate", Type: note.TypeDaily, Date: "2024-06-01", Tags: []string{"daily"}})
	require.NoError(t, err)

	got, err := repo.GetDailyNote(ctx, "2024-06-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first, got.ID, "first match wins")

	got, err = repo.GetDailyNote(ctx, "2024-06-02")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNoteRepository_GetRecent(t *testing.T) {
	db := NewTestDB(t)
	repo := NewNoteRepository(db)
	clock := &fakeClock{t: time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)}
	repo.now = clock.Now
	ctx := context.Background()

	ids := map[string]int64{}
	for _, title := range []string{"oldest", "middle", "newest"} {
		id, err := repo.Add(ctx, note.Note{Title: title, Type: note.TypeGeneral, Tags: []string{}})
		require.NoError(t, err)
		ids[title] = id
		clock.Advance(time.Minute)
	}

	// touching the oldest note moves it to the front
	oldest, err := repo.Get(ctx, ids["oldest"])
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, *oldest))

	recent, err := repo.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "oldest", recent[0].Title)
	assert.Equal(t, "newest", recent[1].Title)

	all, err := repo.GetRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := repo.GetRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNoteRepository_GetByIdsDropsMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewNoteRepository(db)
	ctx := context.Background()

	a, err := repo.Add(ctx, note.Note{Title: "a", Type: note.TypeGeneral, Tags: []string{}})
	require.NoError(t, err)
	b, err := repo.Add(ctx, note.Note{Title: "b", Type: note.TypeGeneral, Tags: []string{}})
	require.NoError(t, err)
	c, err := repo.Add(ctx, note.Note{Title: "c", Type: note.TypeGeneral, Tags: []string{}})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, b))

	notes, err := repo.GetByIds(ctx, []int64{c, b, 999, a})
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "c", notes[0].Title)
	assert.Equal(t, "a", notes[1].Title)

	notes, err = repo.GetByIds(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
