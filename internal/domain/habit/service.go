package habit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/personalos/internal/calendar"
	"github.com/rpggio/personalos/internal/logging"
	"github.com/rpggio/personalos/internal/validation"
)

// Service handles habit operations.
type Service struct {
	repo     Repository
	validate *validation.Validator
	logger   *slog.Logger
}

// NewService creates a new habit service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, validate: validation.New(), logger: logging.OrDiscard(logger)}
}

// GetAllHabits returns every habit.
func (s *Service) GetAllHabits(ctx context.Context) ([]Habit, error) {
	habits, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing habits: %w", err)
	}
	return habits, nil
}

// GetHabit returns the habit with id, or nil if it does not exist.
func (s *Service) GetHabit(ctx context.Context, id int64) (*Habit, error) {
	h, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting habit %d: %w", id, err)
	}
	return h, nil
}

// AddHabit creates a daily habit with no completions. An empty routine means anytime.
func (s *Service) AddHabit(ctx context.Context, title string, routine Routine) (int64, error) {
	if err := s.validate.Var("title", title, "notblank"); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if routine == "" {
		routine = RoutineAnytime
	}
	if err := s.validate.Var("routine", string(routine), "oneof=morning evening anytime"); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	id, err := s.repo.Add(ctx, Habit{
		Title:          strings.TrimSpace(title),
		Frequency:      FrequencyDaily,
		Routine:        routine,
		Streak:         0,
		CompletedDates: []string{},
	})
	if err != nil {
		return 0, fmt.Errorf("adding habit: %w", err)
	}
	return id, nil
}

// DeleteHabit removes a habit.
func (s *Service) DeleteHabit(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting habit %d: %w", id, err)
	}
	return nil
}

// ToggleHabitForDate flips whether h was completed on date and stores the result.
func (s *Service) ToggleHabitForDate(ctx context.Context, h Habit, date string) (Habit, error) {
	if !calendar.Valid(date) {
		return Habit{}, fmt.Errorf("%w: date %q", ErrInvalidInput, date)
	}

	toggled := h.Toggled(date)
	if err := s.repo.Update(ctx, toggled); err != nil {
		return Habit{}, fmt.Errorf("toggling habit %d: %w", h.ID, err)
	}

	stored, err := s.repo.Get(ctx, h.ID)
	if err != nil {
		return Habit{}, fmt.Errorf("reloading habit %d: %w", h.ID, err)
	}
	if stored == nil {
		return toggled, nil
	}
	return *stored, nil
}
