package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/personalos/internal/domain/day"
	"github.com/rpggio/personalos/internal/domain/habit"
	"github.com/rpggio/personalos/internal/domain/note"
	"github.com/rpggio/personalos/internal/domain/task"
	"github.com/rpggio/personalos/internal/logging"
)

// DefaultRecentNotes is used by get_recent_notes when no limit is given.
const DefaultRecentNotes = 5

// Handler implements the MCP tools on top of the domain services.
type Handler struct {
	tasks      TaskService
	sessions   SessionService
	habits     HabitService
	notes      NoteService
	days       DayService
	aggregates ContextService
	logger     *slog.Logger
}

// NewHandler creates a new MCP handler.
func NewHandler(svc Services, logger *slog.Logger) *Handler {
	return &Handler{
		tasks:      svc.Tasks,
		sessions:   svc.Sessions,
		habits:     svc.Habits,
		notes:      svc.Notes,
		days:       svc.Days,
		aggregates: svc.Context,
		logger:     logging.OrDiscard(logger),
	}
}

// Tasks

func (h *Handler) GetTasksForDate(ctx context.Context, p DateParams) (any, error) {
	return h.tasks.GetTasksForDate(ctx, p.Date)
}

func (h *Handler) AddTask(ctx context.Context, p AddTaskParams) (any, error) {
	id, err := h.tasks.AddTask(ctx, task.NewTask{
		Title:         p.Title,
		Description:   p.Description,
		ScheduledDate: p.ScheduledDate,
		Priority:      task.Priority(p.Priority),
		Energy:        task.Energy(p.Energy),
		TimeEstimate:  p.TimeEstimate,
	})
	if err != nil {
		return nil, err
	}
	return IDResponse{ID: id}, nil
}

func (h *Handler) UpdateTask(ctx context.Context, p UpdateTaskParams) (any, error) {
	t, err := h.loadTask(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.IsCompleted != nil {
		t.IsCompleted = *p.IsCompleted
	}
	if p.ScheduledDate != nil {
		t.ScheduledDate = *p.ScheduledDate
	}
	if p.Priority != nil {
		t.Priority = task.Priority(*p.Priority)
	}
	if p.Energy != nil {
		t.Energy = task.Energy(*p.Energy)
	}
	if p.TimeEstimate != nil {
		t.TimeEstimate = p.TimeEstimate
	}
	if err := h.tasks.UpdateTask(ctx, *t); err != nil {
		return nil, err
	}
	return h.loadTask(ctx, p.ID)
}

func (h *Handler) DeleteTask(ctx context.Context, p IDParams) (any, error) {
	if err := h.tasks.DeleteTask(ctx, p.ID); err != nil {
		return nil, err
	}
	return DeletedResponse{ID: p.ID, Deleted: true}, nil
}

func (h *Handler) ToggleTask(ctx context.Context, p IDParams) (any, error) {
	t, err := h.loadTask(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return h.tasks.ToggleCompletion(ctx, *t)
}

func (h *Handler) loadTask(ctx context.Context, id int64) (*task.Task, error) {
	t, err := h.tasks.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return t, nil
}

// Focus sessions

func (h *Handler) GetTodaySessions(ctx context.Context, _ EmptyParams) (any, error) {
	return h.sessions.GetTodaySessions(ctx)
}

func (h *Handler) GetSessionsForDate(ctx context.Context, p DateParams) (any, error) {
	return h.sessions.GetSessionsForDate(ctx, p.Date)
}

func (h *Handler) GetSessionsForTask(ctx context.Context, p TaskRefParams) (any, error) {
	return h.sessions.GetSessionsForTask(ctx, p.TaskID)
}

func (h *Handler) RecordSession(ctx context.Context, p RecordSessionParams) (any, error) {
	id, err := h.sessions.RecordSession(ctx, p.TaskID, p.DurationSeconds)
	if err != nil {
		return nil, err
	}
	return IDResponse{ID: id}, nil
}

func (h *Handler) GetSessionLabel(ctx context.Context, p SessionLabelParams) (any, error) {
	label, err := h.sessions.TaskLabel(ctx, p.TaskID)
	if err != nil {
		return nil, err
	}
	return LabelResponse{Label: label}, nil
}

// Habits

func (h *Handler) ListHabits(ctx context.Context, _ EmptyParams) (any, error) {
	return h.habits.GetAllHabits(ctx)
}

func (h *Handler) AddHabit(ctx context.Context, p AddHabitParams) (any, error) {
	id, err := h.habits.AddHabit(ctx, p.Title, habit.Routine(p.Routine))
	if err != nil {
		return nil, err
	}
	return IDResponse{ID: id}, nil
}

func (h *Handler) DeleteHabit(ctx context.Context, p IDParams) (any, error) {
	if err := h.habits.DeleteHabit(ctx, p.ID); err != nil {
		return nil, err
	}
	return DeletedResponse{ID: p.ID, Deleted: true}, nil
}

func (h *Handler) ToggleHabit(ctx context.Context, p ToggleHabitParams) (any, error) {
	hb, err := h.habits.GetHabit(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if hb == nil {
		return nil, fmt.Errorf("habit %d: %w", p.ID, ErrNotFound)
	}
	return h.habits.ToggleHabitForDate(ctx, *hb, p.Date)
}

// Notes

func (h *Handler) ListNotes(ctx context.Context, _ EmptyParams) (any, error) {
	return h.notes.GetAllNotes(ctx)
}

func (h *Handler) GetRecentNotes(ctx context.Context, p RecentNotesParams) (any, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultRecentNotes
	}
	return h.notes.GetRecentNotes(ctx, limit)
}

// GetDailyNote returns the stored daily note, or null when none exists.
func (h *Handler) GetDailyNote(ctx context.Context, p DateParams) (any, error) {
	return h.notes.GetDailyNote(ctx, p.Date)
}

func (h *Handler) GetDailyNoteDraft(ctx context.Context, p DateParams) (any, error) {
	return h.notes.DailyNoteDraft(ctx, p.Date)
}

func (h *Handler) GetNotesByIDs(ctx context.Context, p NotesByIDsParams) (any, error) {
	return h.notes.GetNotesByIds(ctx, p.IDs)
}

func (h *Handler) SaveNote(ctx context.Context, p SaveNoteParams) (any, error) {
	var n note.Note
	if p.ID != 0 {
		existing, err := h.notes.GetNote(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("note %d: %w", p.ID, ErrNotFound)
		}
		n = *existing
	}
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Tags != nil {
		n.Tags = p.Tags
	}
	if p.Type != nil {
		n.Type = note.Type(*p.Type)
	}
	if p.Date != nil {
		n.Date = *p.Date
	}

	id, err := h.notes.SaveNote(ctx, n)
	if err != nil {
		return nil, err
	}
	return IDResponse{ID: id}, nil
}

func (h *Handler) DeleteNote(ctx context.Context, p IDParams) (any, error) {
	if err := h.notes.DeleteNote(ctx, p.ID); err != nil {
		return nil, err
	}
	return DeletedResponse{ID: p.ID, Deleted: true}, nil
}

func (h *Handler) SearchNotes(ctx context.Context, p SearchNotesParams) (any, error) {
	return h.notes.Search(ctx, p.Query)
}

func (h *Handler) GetBacklinks(ctx context.Context, p BacklinksParams) (any, error) {
	return h.notes.Backlinks(ctx, p.Title, p.ExcludeID)
}

func (h *Handler) GetOutgoingLinks(ctx context.Context, p IDParams) (any, error) {
	n, err := h.notes.GetNote(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("note %d: %w", p.ID, ErrNotFound)
	}

	titles := note.OutgoingLinks(n.Content)
	links := make([]LinkResponse, 0, len(titles))
	for _, title := range titles {
		link := LinkResponse{Title: title}
		target, err := h.notes.FindByTitle(ctx, title)
		if err != nil {
			return nil, err
		}
		if target != nil {
			link.NoteID = &target.ID
		}
		links = append(links, link)
	}
	return links, nil
}

// Days

func (h *Handler) EnsureDay(ctx context.Context, p DateParams) (any, error) {
	return h.days.EnsureDay(ctx, p.Date)
}

func (h *Handler) UpdateDay(ctx context.Context, p UpdateDayParams) (any, error) {
	patch := day.Patch{Summary: p.Summary, Intention: p.Intention}
	if p.Mood != nil {
		mood := day.Mood(*p.Mood)
		patch.Mood = &mood
	}
	return h.days.PatchDay(ctx, p.Date, patch)
}

func (h *Handler) SetIntention(ctx context.Context, p DayTextParams) (any, error) {
	return h.days.SetIntention(ctx, p.Date, p.Text)
}

func (h *Handler) SetSummary(ctx context.Context, p DayTextParams) (any, error) {
	return h.days.SetSummary(ctx, p.Date, p.Text)
}

func (h *Handler) SetMood(ctx context.Context, p MoodParams) (any, error) {
	return h.days.SetMood(ctx, p.Date, day.Mood(p.Mood))
}

func (h *Handler) AddPlanItem(ctx context.Context, p DayTextParams) (any, error) {
	return h.days.AddPlanItem(ctx, p.Date, p.Text)
}

func (h *Handler) TogglePlanItem(ctx context.Context, p PlanItemParams) (any, error) {
	return h.days.TogglePlanItem(ctx, p.Date, p.ItemID)
}

func (h *Handler) RemovePlanItem(ctx context.Context, p PlanItemParams) (any, error) {
	return h.days.RemovePlanItem(ctx, p.Date, p.ItemID)
}

func (h *Handler) PinNote(ctx context.Context, p PinNoteParams) (any, error) {
	return h.days.PinNote(ctx, p.Date, p.NoteID)
}

func (h *Handler) UnpinNote(ctx context.Context, p PinNoteParams) (any, error) {
	return h.days.UnpinNote(ctx, p.Date, p.NoteID)
}

// Aggregation

func (h *Handler) GetContext(ctx context.Context, p DateParams) (any, error) {
	return h.aggregates.GetContext(ctx, p.Date)
}

func (h *Handler) GetTodayContext(ctx context.Context, _ EmptyParams) (any, error) {
	return h.aggregates.GetTodayContext(ctx)
}

func (h *Handler) GetFormattedPrompt(ctx context.Context, _ EmptyParams) (any, error) {
	prompt, err := h.aggregates.GetFormattedPrompt(ctx)
	if err != nil {
		return nil, err
	}
	return PromptResponse{Prompt: prompt}, nil
}
