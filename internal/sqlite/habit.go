package sqlite

import "github.com/rpggio/personalos/internal/domain/habit"

// HabitRepository stores habits. It has no queries beyond CRUD.
type HabitRepository struct {
	*Repository[habit.Habit, *habit.Habit]
}

// NewHabitRepository creates a new HabitRepository
func NewHabitRepository(db *DB) *HabitRepository {
	return &HabitRepository{NewRepository[habit.Habit](db, CollectionHabits)}
}
