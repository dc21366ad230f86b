package sqlite

import (
	"context"
	"time"

	"github.com/rpggio/personalos/internal/calendar"
	"github.com/rpggio/personalos/internal/domain/timesession"
)

// TimeSessionRepository stores focus sessions.
type TimeSessionRepository struct {
	*Repository[timesession.TimeSession, *timesession.TimeSession]
}

// NewTimeSessionRepository creates a new TimeSessionRepository
func NewTimeSessionRepository(db *DB) *TimeSessionRepository {
	return &TimeSessionRepository{NewRepository[timesession.TimeSession](db, CollectionTimeSessions)}
}

// GetSessionsByDate returns sessions that started within the local day
// containing date, bounds included, ordered by start time.
func (r *TimeSessionRepository) GetSessionsByDate(ctx context.Context, date time.Time) ([]timesession.TimeSession, error) {
	start, end := calendar.DayBounds(date)
	return GetByRange[timesession.TimeSession](ctx, r.db, r.collection, "startTime", Bound(start, end))
}

// GetTodaySessions returns the sessions started today.
func (r *TimeSessionRepository) GetTodaySessions(ctx context.Context) ([]timesession.TimeSession, error) {
	return r.GetSessionsByDate(ctx, r.now())
}
