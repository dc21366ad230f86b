package sqlite

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/rpggio/personalos/internal/domain/note"
)

// maxParallelGets bounds the point lookups GetByIds keeps in flight.
const maxParallelGets = 8

// NoteRepository stores notes.
type NoteRepository struct {
	*Repository[note.Note, *note.Note]
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *DB) *NoteRepository {
	return &NoteRepository{NewRepository[note.Note](db, CollectionNotes)}
}

// GetDailyNote scans for the daily note of date. If several exist the one
// with the lowest identity wins.
func (r *NoteRepository) GetDailyNote(ctx context.Context, date string) (*note.Note, error) {
	notes, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range notes {
		if notes[i].IsDailyFor(date) {
			return &notes[i], nil
		}
	}
	return nil, nil
}

// GetRecent returns up to n notes, most recently updated first.
func (r *NoteRepository) GetRecent(ctx context.Context, n int) ([]note.Note, error) {
	notes, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(notes, func(a, b note.Note) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	if n < 0 {
		n = 0
	}
	if len(notes) > n {
		notes = notes[:n]
	}
	return notes, nil
}

// GetByIds fetches the notes with the given identities in input order.
// Identities that no longer resolve are dropped.
func (r *NoteRepository) GetByIds(ctx context.Context, ids []int64) ([]note.Note, error) {
	found := make([]*note.Note, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelGets)
	for i, id := range ids {
		g.Go(func() error {
			n, err := r.Get(gctx, id)
			if err != nil {
				return err
			}
			found[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]note.Note, 0, len(ids))
	for _, n := range found {
		if n != nil {
			out = append(out, *n)
		}
	}
	return out, nil
}
