package timesession

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/rpggio/personalos/internal/calendar"
	"github.com/rpggio/personalos/internal/logging"
)

// Labels for sessions without a resolvable task.
const (
	FreeFocusLabel   = "Free Focus"
	UnknownTaskLabel = "Unknown Task"
)

// Service handles focus session operations.
type Service struct {
	repo   Repository
	tasks  TaskLookup
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new session service.
func NewService(repo Repository, tasks TaskLookup, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		tasks:  tasks,
		logger: logging.OrDiscard(logger),
		now:    time.Now,
	}
}

// GetTodaySessions returns the sessions started today.
func (s *Service) GetTodaySessions(ctx context.Context) ([]TimeSession, error) {
	sessions, err := s.repo.GetTodaySessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting today's sessions: %w", err)
	}
	return sessions, nil
}

// GetSessionsForDate returns the sessions started on the given calendar day.
func (s *Service) GetSessionsForDate(ctx context.Context, date string) ([]TimeSession, error) {
	day, err := calendar.Parse(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	sessions, err := s.repo.GetSessionsByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("getting sessions for %s: %w", date, err)
	}
	return sessions, nil
}

// GetSessionsForTask returns the sessions attributed to taskID, newest first.
func (s *Service) GetSessionsForTask(ctx context.Context, taskID int64) ([]TimeSession, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting sessions for task %d: %w", taskID, err)
	}

	out := make([]TimeSession, 0)
	for _, sess := range all {
		if sess.TaskID != nil && *sess.TaskID == taskID {
			out = append(out, sess)
		}
	}
	slices.SortStableFunc(out, func(a, b TimeSession) int {
		return b.StartTime.Compare(a.StartTime)
	})
	return out, nil
}

// RecordSession stores a session that ended now and lasted durationSeconds.
// Sessions of MinPersistedSeconds or less are dropped and yield identity 0.
func (s *Service) RecordSession(ctx context.Context, taskID *int64, durationSeconds int64) (int64, error) {
	if durationSeconds <= MinPersistedSeconds {
		s.logger.Debug("session too short to record", "duration_seconds", durationSeconds)
		return 0, nil
	}

	end := s.now()
	sess := TimeSession{
		TaskID:          taskID,
		StartTime:       end.Add(-time.Duration(durationSeconds) * time.Second),
		EndTime:         &end,
		DurationSeconds: durationSeconds,
	}

	id, err := s.repo.Add(ctx, sess)
	if err != nil {
		return 0, fmt.Errorf("recording session: %w", err)
	}
	return id, nil
}

// TaskLabel names the task a session belongs to. Sessions without a task are
// free focus; a task that no longer exists is reported as unknown.
func (s *Service) TaskLabel(ctx context.Context, taskID *int64) (string, error) {
	if taskID == nil {
		return FreeFocusLabel, nil
	}
	t, err := s.tasks.Get(ctx, *taskID)
	if err != nil {
		return "", fmt.Errorf("resolving task %d: %w", *taskID, err)
	}
	if t == nil {
		return UnknownTaskLabel, nil
	}
	return t.Title, nil
}
