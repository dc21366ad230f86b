package repository

import "errors"

var (
	// ErrStoreUnavailable is returned when the embedded store cannot be opened
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrConstraintViolation is returned when a write conflicts with a unique index
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrTransactionAborted is returned when a transaction fails for any other reason
	ErrTransactionAborted = errors.New("transaction aborted")

	// ErrMissingID is returned when an update is attempted on an entity without identity
	ErrMissingID = errors.New("entity has no identity")

	// ErrUnknownCollection is returned for a collection the schema does not declare
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrUnknownIndex is returned for an index the collection does not declare
	ErrUnknownIndex = errors.New("unknown index")
)
