package sqlite

import (
	"context"

	"github.com/rpggio/personalos/internal/domain/task"
)

// TaskRepository stores tasks.
type TaskRepository struct {
	*Repository[task.Task, *task.Task]
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{NewRepository[task.Task](db, CollectionTasks)}
}

// GetByDate returns the tasks scheduled on date in storage order.
func (r *TaskRepository) GetByDate(ctx context.Context, date string) ([]task.Task, error) {
	return GetByIndex[task.Task](ctx, r.db, r.collection, "scheduledDate", date)
}
