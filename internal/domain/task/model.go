package task

import "github.com/rpggio/personalos/internal/repository"

// Priority ranks a task within its day.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities high=3 > medium=2 > low=1. Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Energy is the effort a task demands.
type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyDeep   Energy = "deep"
)

// Task is a unit of work scheduled on a calendar day.
type Task struct {
	repository.Base
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	IsCompleted   bool     `json:"isCompleted"`
	ScheduledDate string   `json:"scheduledDate"`
	Priority      Priority `json:"priority"`
	Energy        Energy   `json:"energy"`
	// TimeEstimate is in minutes.
	TimeEstimate *int `json:"timeEstimate,omitempty"`
}

// NewTask holds the caller-supplied fields of a task being created.
// An empty ScheduledDate means today; empty Priority and Energy default to medium.
type NewTask struct {
	Title         string   `json:"title" validate:"notblank"`
	Description   string   `json:"description,omitempty"`
	ScheduledDate string   `json:"scheduledDate,omitempty" validate:"omitempty,calendarday"`
	Priority      Priority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Energy        Energy   `json:"energy,omitempty" validate:"omitempty,oneof=low medium deep"`
	TimeEstimate  *int     `json:"timeEstimate,omitempty" validate:"omitempty,gte=0"`
}
