package habit

import (
	"slices"

	"github.com/rpggio/personalos/internal/repository"
)

// Frequency is how often a habit is meant to be done.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// Routine is the part of the day a habit belongs to.
type Routine string

const (
	RoutineMorning Routine = "morning"
	RoutineEvening Routine = "evening"
	RoutineAnytime Routine = "anytime"
)

// Habit is a recurring practice with the calendar days it was completed on.
type Habit struct {
	repository.Base
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Frequency      Frequency `json:"frequency"`
	Routine        Routine   `json:"routine,omitempty"`
	Streak         int       `json:"streak"`
	CompletedDates []string  `json:"completedDates"`
}

// IsCompletedOn reports whether the habit was completed on date.
func (h Habit) IsCompletedOn(date string) bool {
	return slices.Contains(h.CompletedDates, date)
}

// Toggled returns a copy of h with date's completion flipped: added when
// absent, removed when present.
func (h Habit) Toggled(date string) Habit {
	dates := make([]string, 0, len(h.CompletedDates)+1)
	found := false
	for _, d := range h.CompletedDates {
		if d == date {
			found = true
			continue
		}
		dates = append(dates, d)
	}
	if !found {
		dates = append(dates, date)
	}
	h.CompletedDates = dates
	return h
}
