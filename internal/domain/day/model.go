package day

import "github.com/rpggio/personalos/internal/repository"

// Mood is the self-reported tone of a day.
type Mood string

const (
	MoodGreat   Mood = "great"
	MoodGood    Mood = "good"
	MoodNeutral Mood = "neutral"
	MoodBad     Mood = "bad"
	MoodAwful   Mood = "awful"
)

// MaxPlanItems caps the plan of a single day.
const MaxPlanItems = 5

// PlanItem is one entry of a day's plan.
type PlanItem struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

// Day is the per-date record. At most one exists per date.
type Day struct {
	repository.Base
	Date          string     `json:"date"`
	Summary       string     `json:"summary,omitempty"`
	Mood          Mood       `json:"mood,omitempty"`
	Intention     string     `json:"intention,omitempty"`
	Plan          []PlanItem `json:"plan,omitempty"`
	PinnedNoteIDs []int64    `json:"pinnedNoteIds"`
}
