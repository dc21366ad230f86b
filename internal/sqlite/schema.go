package sqlite

import (
	"fmt"

	"github.com/rpggio/personalos/internal/repository"
)

// SchemaVersion is the version of DefaultSchema.
const SchemaVersion = 5

// Collection names.
const (
	CollectionTasks        = "tasks"
	CollectionHabits       = "habits"
	CollectionNotes        = "notes"
	CollectionTimeSessions = "time_sessions"
	CollectionDays         = "days"
)

// KeyKind is how an index key is extracted and compared.
type KeyKind int

const (
	// KindText keys are compared as strings.
	KindText KeyKind = iota
	// KindTime keys are RFC 3339 timestamps compared as instants.
	KindTime
)

func (k KeyKind) columnType() string {
	if k == KindTime {
		return "INTEGER"
	}
	return "TEXT"
}

// Index is a secondary lookup on one document field.
type Index struct {
	Name   string
	Field  string
	Kind   KeyKind
	Unique bool
}

func (i Index) column() string {
	return "ix_" + i.Name
}

// Collection is a named set of documents of the same kind.
type Collection struct {
	Name    string
	Indexes []Index
}

// Index returns the named index of c.
func (c Collection) Index(name string) (Index, error) {
	for _, idx := range c.Indexes {
		if idx.Name == name {
			return idx, nil
		}
	}
	return Index{}, fmt.Errorf("%w: %s.%s", repository.ErrUnknownIndex, c.Name, name)
}

// Schema is the declared shape of the store.
type Schema struct {
	Version     int
	Collections []Collection
}

// Collection returns the named collection of s.
func (s Schema) Collection(name string) (Collection, error) {
	for _, c := range s.Collections {
		if c.Name == name {
			return c, nil
		}
	}
	return Collection{}, fmt.Errorf("%w: %s", repository.ErrUnknownCollection, name)
}

// DefaultSchema declares the five personal data collections.
func DefaultSchema() Schema {
	return Schema{
		Version: SchemaVersion,
		Collections: []Collection{
			{Name: CollectionTasks, Indexes: []Index{
				{Name: "scheduledDate", Field: "scheduledDate", Kind: KindText},
			}},
			{Name: CollectionHabits},
			{Name: CollectionNotes, Indexes: []Index{
				{Name: "updatedAt", Field: "updatedAt", Kind: KindTime},
			}},
			{Name: CollectionTimeSessions, Indexes: []Index{
				{Name: "startTime", Field: "startTime", Kind: KindTime},
			}},
			{Name: CollectionDays, Indexes: []Index{
				{Name: "date", Field: "date", Kind: KindText, Unique: true},
			}},
		},
	}
}
