package task

import (
	"context"

	"github.com/rpggio/personalos/internal/repository"
)

// Repository provides persistence for tasks.
type Repository interface {
	repository.CRUD[Task]
	GetByDate(ctx context.Context, date string) ([]Task, error)
}
