package timesession

import (
	"time"

	"github.com/rpggio/personalos/internal/repository"
)

// MinPersistedSeconds is the duration a session must exceed to be stored.
const MinPersistedSeconds = 10

// TimeSession is a block of focused time, optionally attributed to a task.
// TaskID is a weak reference; the task may since have been deleted.
type TimeSession struct {
	repository.Base
	TaskID          *int64     `json:"taskId,omitempty"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	DurationSeconds int64      `json:"durationSeconds"`
}
