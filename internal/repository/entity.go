package repository

import "time"

// Base carries the identity and lifecycle timestamps every stored entity shares.
// ID is zero until the entity has been persisted.
type Base struct {
	ID        int64     `json:"id,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meta exposes the base fields of an embedding entity.
func (b *Base) Meta() *Base {
	return b
}

// Entity is implemented by pointers to types embedding Base.
type Entity interface {
	Meta() *Base
}
