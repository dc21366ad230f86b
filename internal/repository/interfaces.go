package repository

import "context"

// CRUD is the lifecycle contract shared by every typed repository.
//
// Get returns (nil, nil) when no entity has the identity. Add ignores any
// identity or timestamps on the input and returns the new identity. Update
// requires an identity, keeps CreatedAt and refreshes UpdatedAt.
type CRUD[T any] interface {
	Get(ctx context.Context, id int64) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	Add(ctx context.Context, item T) (int64, error)
	Update(ctx context.Context, item T) error
	Delete(ctx context.Context, id int64) error
}
