package daycontext

import (
	"github.com/rpggio/personalos/internal/domain/day"
	"github.com/rpggio/personalos/internal/domain/habit"
	"github.com/rpggio/personalos/internal/domain/note"
	"github.com/rpggio/personalos/internal/domain/task"
	"github.com/rpggio/personalos/internal/domain/timesession"
)

// HabitStatus pairs a habit with its completion on the aggregated date.
type HabitStatus struct {
	Habit       habit.Habit `json:"habit"`
	IsCompleted bool        `json:"isCompleted"`
}

// Metrics are the figures derived for a single day.
type Metrics struct {
	// CompletionRate is completed/total tasks in [0,1], 0 when there are no tasks.
	CompletionRate    float64  `json:"completionRate"`
	TotalFocusMinutes float64  `json:"totalFocusMinutes"`
	Mood              day.Mood `json:"mood,omitempty"`
}

// DayAggregate is a read-only snapshot of everything recorded for one date.
// It is assembled on demand and never stored.
type DayAggregate struct {
	Date     string                    `json:"date"`
	Overview day.Day                   `json:"overview"`
	Tasks    []task.Task               `json:"tasks"`
	Sessions []timesession.TimeSession `json:"sessions"`
	// Notes holds the daily note, when one exists, followed by the pinned notes.
	Notes   []note.Note   `json:"notes"`
	Habits  []HabitStatus `json:"habits"`
	Metrics Metrics       `json:"metrics"`
}
