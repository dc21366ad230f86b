package sqlite

import (
	"context"
	"time"

	"github.com/rpggio/personalos/internal/repository"
)

// Repository is the CRUD helper shared by the typed repositories. It fixes
// the collection and owns lifecycle timestamps.
type Repository[T any, P interface {
	*T
	repository.Entity
}] struct {
	db         *DB
	collection string
	now        func() time.Time
}

// NewRepository creates a helper over collection.
func NewRepository[T any, P interface {
	*T
	repository.Entity
}](db *DB, collection string) *Repository[T, P] {
	return &Repository[T, P]{db: db, collection: collection, now: time.Now}
}

// Get returns the entity with id, or nil when it does not exist.
func (r *Repository[T, P]) Get(ctx context.Context, id int64) (*T, error) {
	return Get[T](ctx, r.db, r.collection, id)
}

// GetAll returns every entity in identity order.
func (r *Repository[T, P]) GetAll(ctx context.Context) ([]T, error) {
	return GetAll[T](ctx, r.db, r.collection)
}

// Add stamps createdAt and updatedAt and stores item as a new entity. Any
// identity or timestamps already on item are ignored.
func (r *Repository[T, P]) Add(ctx context.Context, item T) (int64, error) {
	meta := P(&item).Meta()
	now := r.now()
	meta.ID = 0
	meta.CreatedAt = now
	meta.UpdatedAt = now
	return Add(ctx, r.db, r.collection, item)
}

// Update refreshes updatedAt and replaces the stored entity. createdAt is
// kept as given.
func (r *Repository[T, P]) Update(ctx context.Context, item T) error {
	meta := P(&item).Meta()
	if meta.ID == 0 {
		return repository.ErrMissingID
	}
	meta.UpdatedAt = r.now()
	return Put(ctx, r.db, r.collection, meta.ID, item)
}

// Delete removes the entity with id.
func (r *Repository[T, P]) Delete(ctx context.Context, id int64) error {
	return Delete(ctx, r.db, r.collection, id)
}

// Repositories bundles the typed repositories over one store.
type Repositories struct {
	Tasks    *TaskRepository
	Sessions *TimeSessionRepository
	Habits   *HabitRepository
	Notes    *NoteRepository
	Days     *DayRepository
}

// NewRepositories wires every typed repository to db.
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Tasks:    NewTaskRepository(db),
		Sessions: NewTimeSessionRepository(db),
		Habits:   NewHabitRepository(db),
		Notes:    NewNoteRepository(db),
		Days:     NewDayRepository(db),
	}
}
