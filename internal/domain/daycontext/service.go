package daycontext

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rpggio/personalos/internal/calendar"
	"github.com/rpggio/personalos/internal/domain/day"
	"github.com/rpggio/personalos/internal/domain/habit"
	"github.com/rpggio/personalos/internal/domain/note"
	"github.com/rpggio/personalos/internal/domain/task"
	"github.com/rpggio/personalos/internal/domain/timesession"
	"github.com/rpggio/personalos/internal/logging"
)

// RecentNoteCount is how many recent notes the formatted prompt mentions.
const RecentNoteCount = 5

// AdviceFallback is returned by Advice when the generator fails.
const AdviceFallback = "I'm having trouble connecting right now. Trust your intuition for the next step."

// AdviceInstruction is the system instruction handed to the advice generator.
const AdviceInstruction = `You are a calm, wise, and non-judgmental personal productivity assistant.
Your goal is to help the user have a balanced, realistic day.

Rules:
1. Analyze the user's context (energy, time, existing plan).
2. If the plan is empty, suggest 3-4 realistic high-impact items based on high priority tasks.
3. If the plan is full/ambitious, gently warn about potential burnout or overload.
4. Respect the user's "Intention" if set.
5. Keep the response concise (under 100 words).
6. Use a soothing, reflective tone.
7. Do not use markdown formatting (no bold/italic), just plain text.`

// Deps are the domain services an aggregate is assembled from.
type Deps struct {
	Days     Days
	Tasks    Tasks
	Sessions Sessions
	Habits   Habits
	Notes    Notes
}

// Service assembles day aggregates.
type Service struct {
	deps   Deps
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new aggregation service.
func NewService(deps Deps, logger *slog.Logger) *Service {
	return &Service{deps: deps, logger: logging.OrDiscard(logger), now: time.Now}
}

// GetContext returns the aggregate for date, creating the day row if needed.
func (s *Service) GetContext(ctx context.Context, date string) (*DayAggregate, error) {
	if !calendar.Valid(date) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	start := time.Now()

	d, err := s.deps.Days.EnsureDay(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("ensuring day %s: %w", date, err)
	}

	var (
		tasks     []task.Task
		sessions  []timesession.TimeSession
		dailyNote *note.Note
		habits    []habit.Habit
		pinned    []note.Note
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.deps.Tasks.GetTasksForDate(gctx, date)
		return err
	})
	g.Go(func() error {
		var err error
		sessions, err = s.deps.Sessions.GetSessionsForDate(gctx, date)
		return err
	})
	g.Go(func() error {
		var err error
		dailyNote, err = s.deps.Notes.GetDailyNote(gctx, date)
		return err
	})
	g.Go(func() error {
		var err error
		habits, err = s.deps.Habits.GetAllHabits(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		pinned, err = s.deps.Notes.GetNotesByIds(gctx, d.PinnedNoteIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregating %s: %w", date, err)
	}

	agg := assemble(*d, tasks, sessions, dailyNote, habits, pinned)
	s.logger.Debug("day aggregated", "date", date, "tasks", len(agg.Tasks), "notes", len(agg.Notes), "elapsed", time.Since(start))
	return agg, nil
}

// GetTodayContext returns the aggregate for the current local day.
func (s *Service) GetTodayContext(ctx context.Context) (*DayAggregate, error) {
	return s.GetContext(ctx, calendar.Format(s.now()))
}

// GetFormattedPrompt renders today's aggregate and the most recent notes.
func (s *Service) GetFormattedPrompt(ctx context.Context) (string, error) {
	agg, err := s.GetTodayContext(ctx)
	if err != nil {
		return "", err
	}
	recent, err := s.deps.Notes.GetRecentNotes(ctx, RecentNoteCount)
	if err != nil {
		return "", fmt.Errorf("listing recent notes: %w", err)
	}
	return FormatPrompt(agg, recent), nil
}

// Advice asks gen for advice on today's prompt. Any failure, including one
// while building the prompt, yields AdviceFallback.
func (s *Service) Advice(ctx context.Context, gen Generator) string {
	prompt, err := s.GetFormattedPrompt(ctx)
	if err != nil {
		s.logger.Warn("advice prompt unavailable", "error", err)
		return AdviceFallback
	}
	text, err := gen.Generate(ctx, AdviceInstruction, prompt)
	if err != nil {
		s.logger.Warn("advice generation failed", "error", err)
		return AdviceFallback
	}
	return strings.TrimSpace(text)
}

func assemble(d day.Day, tasks []task.Task, sessions []timesession.TimeSession, dailyNote *note.Note, habits []habit.Habit, pinned []note.Note) *DayAggregate {
	statuses := make([]HabitStatus, 0, len(habits))
	for _, h := range habits {
		statuses = append(statuses, HabitStatus{Habit: h, IsCompleted: h.IsCompletedOn(d.Date)})
	}

	notes := make([]note.Note, 0, len(pinned)+1)
	if dailyNote != nil {
		notes = append(notes, *dailyNote)
	}
	notes = append(notes, pinned...)

	completed := 0
	for _, t := range tasks {
		if t.IsCompleted {
			completed++
		}
	}
	rate := 0.0
	if len(tasks) > 0 {
		rate = float64(completed) / float64(len(tasks))
	}

	var seconds int64
	for _, sess := range sessions {
		seconds += sess.DurationSeconds
	}

	if tasks == nil {
		tasks = []task.Task{}
	}
	if sessions == nil {
		sessions = []timesession.TimeSession{}
	}

	return &DayAggregate{
		Date:     d.Date,
		Overview: d,
		Tasks:    tasks,
		Sessions: sessions,
		Notes:    notes,
		Habits:   statuses,
		Metrics: Metrics{
			CompletionRate:    rate,
			TotalFocusMinutes: float64(seconds) / 60,
			Mood:              d.Mood,
		},
	}
}
