package timesession

import (
	"context"
	"time"

	"github.com/rpggio/personalos/internal/domain/task"
	"github.com/rpggio/personalos/internal/repository"
)

// Repository provides persistence for time sessions.
type Repository interface {
	repository.CRUD[TimeSession]
	GetSessionsByDate(ctx context.Context, date time.Time) ([]TimeSession, error)
	GetTodaySessions(ctx context.Context) ([]TimeSession, error)
}

// TaskLookup resolves the task a session is attributed to.
type TaskLookup interface {
	Get(ctx context.Context, id int64) (*task.Task, error)
}
