package daycontext

import (
	"context"

	"github.com/rpggio/personalos/internal/domain/day"
	"github.com/rpggio/personalos/internal/domain/habit"
	"github.com/rpggio/personalos/internal/domain/note"
	"github.com/rpggio/personalos/internal/domain/task"
	"github.com/rpggio/personalos/internal/domain/timesession"
)

// Days ensures the per-date day row.
type Days interface {
	EnsureDay(ctx context.Context, date string) (*day.Day, error)
}

// Tasks lists the tasks of a date.
type Tasks interface {
	GetTasksForDate(ctx context.Context, date string) ([]task.Task, error)
}

// Sessions lists the focus sessions of a date.
type Sessions interface {
	GetSessionsForDate(ctx context.Context, date string) ([]timesession.TimeSession, error)
}

// Habits lists every habit.
type Habits interface {
	GetAllHabits(ctx context.Context) ([]habit.Habit, error)
}

// Notes provides the note queries an aggregate needs.
type Notes interface {
	GetDailyNote(ctx context.Context, date string) (*note.Note, error)
	GetNotesByIds(ctx context.Context, ids []int64) ([]note.Note, error)
	GetRecentNotes(ctx context.Context, n int) ([]note.Note, error)
}

// Generator turns a context prompt into advice text. Implementations talk to
// whatever text-generation backend the host provides.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
}
