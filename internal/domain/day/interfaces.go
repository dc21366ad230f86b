package day

import (
	"context"

	"github.com/rpggio/personalos/internal/repository"
)

// Repository provides persistence for day rows.
type Repository interface {
	repository.CRUD[Day]
	GetByDate(ctx context.Context, date string) (*Day, error)
}
