package note_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/personalos/internal/domain/note"
	"github.com/rpggio/personalos/internal/repository/mocks"
	"github.com/rpggio/personalos/internal/sqlite"
)

func stored(id int64, n note.Note, updated time.Time) note.Note {
	n.ID = id
	n.UpdatedAt = updated
	return n
}

func TestSaveNote_EmptyGeneralNoteIsSkipped(t *testing.T) {
	repo := &mocks.NoteRepository{}
	svc := note.NewService(repo, nil)

	id, err := svc.SaveNote(context.Background(), note.Note{Type: note.TypeGeneral, Title: " ", Content: "\n"})
	require.NoError(t, err)
	assert.Zero(t, id)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestSaveNote_DefaultsUntitled(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.NoteRepository{}
	repo.On("Add", ctx, mock.MatchedBy(func(n note.Note) bool {
		return n.Title == note.UntitledTitle && n.Content == "x" && n.Type == note.TypeGeneral
	})).Return(int64(3), nil)

	svc := note.NewService(repo, nil)
	id, err := svc.SaveNote(ctx, note.Note{Type: note.TypeGeneral, Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	repo.AssertExpectations(t)
}

func TestSaveNote_UpdateReturnsExistingIdentity(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.NoteRepository{}
	repo.On("Update", ctx, mock.MatchedBy(func(n note.Note) bool {
		return n.ID == 9 && n.Title == "" && assert.ObjectsAreEqual([]string{"work"}, n.Tags)
	})).Return(nil)

	in := note.Note{Type: note.TypeGeneral, Content: "edited", Tags: []string{"Work", "work"}}
	in.ID = 9

	svc := note.NewService(repo, nil)
	id, err := svc.SaveNote(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
	repo.AssertExpectations(t)
}

func TestSaveNote_DailyNoteRules(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a date", func(t *testing.T) {
		svc := note.NewService(&mocks.NoteRepository{}, nil)
		_, err := svc.SaveNote(ctx, note.Note{Type: note.TypeDaily, Title: "Daily"})
		require.ErrorIs(t, err, note.ErrInvalidInput)
	})

	t.Run("rejects a second note for the date", func(t *testing.T) {
		repo := &mocks.NoteRepository{}
		existing := stored(1, note.Note{Type: note.TypeDaily, Date: "2024-06-01"}, time.Now())
		repo.On("GetDailyNote", ctx, "2024-06-01").Return(&existing, nil)

		svc := note.NewService(repo, nil)
		_, err := svc.SaveNote(ctx, note.Note{Type: note.TypeDaily, Date: "2024-06-01", Title: "again"})
		require.ErrorIs(t, err, note.ErrDuplicateDailyNote)
	})

	t.Run("updating the existing daily note is allowed", func(t *testing.T) {
		repo := &mocks.NoteRepository{}
		existing := stored(1, note.Note{Type: note.TypeDaily, Date: "2024-06-01"}, time.Now())
		repo.On("GetDailyNote", ctx, "2024-06-01").Return(&existing, nil)
		repo.On("Update", ctx, mock.Anything).Return(nil)

		svc := note.NewService(repo, nil)
		id, err := svc.SaveNote(ctx, existing)
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})

	t.Run("empty daily note is still created", func(t *testing.T) {
		repo := &mocks.NoteRepository{}
		repo.On("GetDailyNote", ctx, "2024-06-02").Return((*note.Note)(nil), nil)
		repo.On("Add", ctx, mock.MatchedBy(func(n note.Note) bool {
			return n.Title == note.UntitledTitle && n.Type == note.TypeDaily
		})).Return(int64(4), nil)

		svc := note.NewService(repo, nil)
		id, err := svc.SaveNote(ctx, note.Note{Type: note.TypeDaily, Date: "2024-06-02"})
		require.NoError(t, err)
		assert.Equal(t, int64(4), id)
	})
}

func TestSaveNote_RejectsUnknownType(t *testing.T) {
	svc := note.NewService(&mocks.NoteRepository{}, nil)
	_, err := svc.SaveNote(context.Background(), note.Note{Type: "journal", Title: "x"})
	require.ErrorIs(t, err, note.ErrInvalidInput)
}

func TestDailyNoteDraft(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.NoteRepository{}
	repo.On("GetDailyNote", ctx, "2024-01-02").Return((*note.Note)(nil), nil)

	svc := note.NewService(repo, nil)
	draft, err := svc.DailyNoteDraft(ctx, "2024-01-02")
	require.NoError(t, err)
	assert.Zero(t, draft.ID)
	assert.Equal(t, "Daily Note: Jan 2", draft.Title)
	assert.Equal(t, []string{"daily"}, draft.Tags)
	assert.Equal(t, note.TypeDaily, draft.Type)
	assert.Equal(t, "2024-01-02", draft.Date)

	_, err = svc.DailyNoteDraft(ctx, "tomorrow")
	require.ErrorIs(t, err, note.ErrInvalidInput)
}

func TestSearchAndBacklinks(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

	repo := &mocks.NoteRepository{}
	repo.On("GetAll", ctx).Return([]note.Note{
		stored(1, note.Note{Title: "Project Plan", Content: "milestones", Tags: []string{"work"}}, base),
		stored(2, note.Note{Title: "Standup", Content: "see [[project plan]]", Tags: []string{}}, base.Add(2*time.Hour)),
		stored(3, note.Note{Title: "Groceries", Content: "milk", Tags: []string{"home"}}, base.Add(time.Hour)),
	}, nil)

	svc := note.NewService(repo, nil)

	found, err := svc.Search(ctx, "project")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, int64(2), found[0].ID, "most recently updated first")
	assert.Equal(t, int64(1), found[1].ID)

	all, err := svc.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{2, 3, 1}, []int64{all[0].ID, all[1].ID, all[2].ID})

	byTag, err := svc.Search(ctx, "HOME")
	require.NoError(t, err)
	require.Len(t, byTag, 1)

	back, err := svc.Backlinks(ctx, "Project Plan", 1)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, "Standup", back[0].Title)

	match, err := svc.FindByTitle(ctx, "groceries")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, int64(3), match.ID)
}

func TestGetNotesByIdsPassesThrough(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.NoteRepository{}
	repo.On("GetByIds", ctx, []int64{5, 6}).Return([]note.Note{{Title: "only five"}}, nil)

	svc := note.NewService(repo, nil)
	notes, err := svc.GetNotesByIds(ctx, []int64{5, 6})
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestSaveNote_ConcurrentDailySavesKeepOneNote(t *testing.T) {
	ctx := context.Background()
	db := sqlite.New(":memory:", nil)
	require.NoError(t, db.Open(ctx))
	t.Cleanup(func() { db.Close() })
	svc := note.NewService(sqlite.NewNoteRepository(db), nil)

	const writers = 20
	start := make(chan struct{})
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = svc.SaveNote(ctx, note.Note{
				Type:  note.TypeDaily,
				Date:  "2024-06-01",
				Title: fmt.Sprintf("draft %d", i),
			})
		}(i)
	}
	close(start)
	wg.Wait()

	saved := 0
	for _, err := range errs {
		if err == nil {
			saved++
			continue
		}
		assert.ErrorIs(t, err, note.ErrDuplicateDailyNote)
	}
	assert.Equal(t, 1, saved)

	all, err := svc.GetAllNotes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
