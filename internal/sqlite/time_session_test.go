package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/personalos/internal/domain/timesession"
)

func TestTimeSessionRepository_GetSessionsByDateInclusiveBounds(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTimeSessionRepository(db)
	ctx := context.Background()

	day := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local)
	// durations double as labels
	starts := map[int64]time.Time{
		11: day.Add(-time.Millisecond),
		12: day,
		13: day.Add(13 * time.Hour),
		14: time.Date(2024, time.June, 1, 23, 59, 59, 999e6, time.Local),
		15: time.Date(2024, time.June, 2, 0, 0, 0, 0, time.Local),
	}
	for duration, start := range starts {
		_, err := repo.Add(ctx, timesession.TimeSession{StartTime: start, DurationSeconds: duration})
		require.NoError(t, err)
	}

	sessions, err := repo.GetSessionsByDate(ctx, day.Add(15*time.Hour))
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	got := []int64{sessions[0].DurationSeconds, sessions[1].DurationSeconds, sessions[2].DurationSeconds}
	assert.Equal(t, []int64{12, 13, 14}, got, "ordered by start time")
}

func TestTimeSessionRepository_GetTodaySessions(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTimeSessionRepository(db)
	clock := &fakeClock{t: time.Date(2024, time.June, 1, 18, 0, 0, 0, time.Local)}
	repo.now = clock.Now
	ctx := context.Background()

	_, err := repo.Add(ctx, timesession.TimeSession{StartTime: clock.t.Add(-2 * time.Hour), DurationSeconds: 600})
	require.NoError(t, err)
	_, err = repo.Add(ctx, timesession.TimeSession{StartTime: clock.t.Add(-24 * time.Hour), DurationSeconds: 900})
	require.NoError(t, err)

	sessions, err := repo.GetTodaySessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(600), sessions[0].DurationSeconds)
}
