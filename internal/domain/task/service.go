package task

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/rpggio/personalos/internal/calendar"
	"github.com/rpggio/personalos/internal/logging"
	"github.com/rpggio/personalos/internal/validation"
)

// Service handles task operations.
type Service struct {
	repo     Repository
	validate *validation.Validator
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new task service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validation.New(),
		logger:   logging.OrDiscard(logger),
		now:      time.Now,
	}
}

// GetTasksForDate returns the tasks scheduled on date in day order.
func (s *Service) GetTasksForDate(ctx context.Context, date string) ([]Task, error) {
	if !calendar.Valid(date) {
		return nil, fmt.Errorf("%w: date %q", ErrInvalidInput, date)
	}
	tasks, err := s.repo.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("getting tasks for %s: %w", date, err)
	}
	SortForDay(tasks)
	return tasks, nil
}

// GetTask returns the task with id, or nil if it does not exist.
func (s *Service) GetTask(ctx context.Context, id int64) (*Task, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting task %d: %w", id, err)
	}
	return t, nil
}

// AddTask creates an incomplete task and returns its identity.
func (s *Service) AddTask(ctx context.Context, in NewTask) (int64, error) {
	if err := s.validate.Struct(in); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	t := Task{
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		ScheduledDate: in.ScheduledDate,
		Priority:      in.Priority,
		Energy:        in.Energy,
		TimeEstimate:  in.TimeEstimate,
	}
	if t.ScheduledDate == "" {
		t.ScheduledDate = calendar.Format(s.now())
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Energy == "" {
		t.Energy = EnergyMedium
	}

	id, err := s.repo.Add(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("adding task: %w", err)
	}
	return id, nil
}

// UpdateTask replaces a stored task.
func (s *Service) UpdateTask(ctx context.Context, t Task) error {
	if err := s.validateTask(t); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return fmt.Errorf("updating task %d: %w", t.ID, err)
	}
	return nil
}

// DeleteTask removes a task. Sessions referencing it are left untouched.
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	return nil
}

// ToggleCompletion flips the completion flag of t and returns the stored result.
func (s *Service) ToggleCompletion(ctx context.Context, t Task) (Task, error) {
	t.IsCompleted = !t.IsCompleted
	if err := s.repo.Update(ctx, t); err != nil {
		return Task{}, fmt.Errorf("toggling task %d: %w", t.ID, err)
	}

	stored, err := s.repo.Get(ctx, t.ID)
	if err != nil {
		return Task{}, fmt.Errorf("reloading task %d: %w", t.ID, err)
	}
	if stored == nil {
		return t, nil
	}
	return *stored, nil
}

func (s *Service) validateTask(t Task) error {
	in := NewTask{
		Title:         t.Title,
		ScheduledDate: t.ScheduledDate,
		Priority:      t.Priority,
		Energy:        t.Energy,
		TimeEstimate:  t.TimeEstimate,
	}
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if t.ScheduledDate == "" {
		return fmt.Errorf("%w: scheduledDate is required", ErrInvalidInput)
	}
	return nil
}

// SortForDay orders tasks incomplete first, then by descending priority.
// Tasks of equal rank keep their relative order.
func SortForDay(tasks []Task) {
	slices.SortStableFunc(tasks, func(a, b Task) int {
		if a.IsCompleted != b.IsCompleted {
			if a.IsCompleted {
				return 1
			}
			return -1
		}
		return b.Priority.Rank() - a.Priority.Rank()
	})
}
