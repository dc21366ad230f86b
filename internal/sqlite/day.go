package sqlite

import (
	"context"

	"github.com/rpggio/personalos/internal/domain/day"
)

// DayRepository stores per-date day records.
type DayRepository struct {
	*Repository[day.Day, *day.Day]
}

// NewDayRepository creates a new DayRepository
func NewDayRepository(db *DB) *DayRepository {
	return &DayRepository{NewRepository[day.Day](db, CollectionDays)}
}

// GetByDate returns the day row for date, or nil when none exists yet.
func (r *DayRepository) GetByDate(ctx context.Context, date string) (*day.Day, error) {
	days, err := GetByIndex[day.Day](ctx, r.db, r.collection, "date", date)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, nil
	}
	return &days[0], nil
}
