package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/personalos/internal/domain/habit"
	"github.com/rpggio/personalos/internal/domain/task"
	"github.com/rpggio/personalos/internal/repository"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestRepository_AddStampsTimestamps(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	clock := &fakeClock{t: time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)}
	repo.now = clock.Now
	ctx := context.Background()

	in := task.Task{Title: "Plan", ScheduledDate: "2024-06-01"}
	in.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	id, err := repo.Add(ctx, in)
	require.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.CreatedAt.Equal(clock.t))
	assert.True(t, got.UpdatedAt.Equal(clock.t))
}

func TestRepository_UpdateRefreshesOnlyUpdatedAt(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	clock := &fakeClock{t: time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)}
	repo.now = clock.Now
	ctx := context.Background()

	id, err := repo.Add(ctx, task.Task{Title: "Plan", ScheduledDate: "2024-06-01"})
	require.NoError(t, err)
	created := clock.t

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	got.IsCompleted = true
	require.NoError(t, repo.Update(ctx, *got))

	got, err = repo.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
	assert.Equal(t, id, got.ID)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.True(t, got.UpdatedAt.Equal(clock.t))
}

func TestRepository_UpdateRequiresIdentity(t *testing.T) {
	db := NewTestDB(t)
	repo := NewHabitRepository(db)

	err := repo.Update(context.Background(), habit.Habit{Title: "Read"})
	require.ErrorIs(t, err, repository.ErrMissingID)
}

func TestRepository_UpdateMissingIdentityAborts(t *testing.T) {
	db := NewTestDB(t)
	repo := NewHabitRepository(db)

	h := habit.Habit{Title: "Read"}
	h.ID = 77
	err := repo.Update(context.Background(), h)
	require.ErrorIs(t, err, repository.ErrTransactionAborted)

	err = repo.Delete(context.Background(), 77)
	require.ErrorIs(t, err, repository.ErrTransactionAborted)
}

func TestRepository_GetAllAndDelete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewHabitRepository(db)
	ctx := context.Background()

	first, err := repo.Add(ctx, habit.Habit{Title: "Read", Frequency: habit.FrequencyDaily, CompletedDates: []string{}})
	require.NoError(t, err)
	_, err = repo.Add(ctx, habit.Habit{Title: "Run", Frequency: habit.FrequencyWeekly, CompletedDates: []string{}})
	require.NoError(t, err)

	habits, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, habits, 2)

	require.NoError(t, repo.Delete(ctx, first))

	habits, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "Run", habits[0].Title)
}

func TestNewRepositories(t *testing.T) {
	repos := NewRepositories(NewTestDB(t))
	require.NotNil(t, repos.Tasks)
	require.NotNil(t, repos.Sessions)
	require.NotNil(t, repos.Habits)
	require.NotNil(t, repos.Notes)
	require.NotNil(t, repos.Days)
}
