package note

import (
	"context"

	"github.com/rpggio/personalos/internal/repository"
)

// Repository provides persistence for notes.
type Repository interface {
	repository.CRUD[Note]
	GetDailyNote(ctx context.Context, date string) (*Note, error)
	GetRecent(ctx context.Context, n int) ([]Note, error)
	GetByIds(ctx context.Context, ids []int64) ([]Note, error)
}
