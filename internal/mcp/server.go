package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/personalos/internal/domain/day"
	"github.com/rpggio/personalos/internal/domain/daycontext"
	"github.com/rpggio/personalos/internal/domain/habit"
	"github.com/rpggio/personalos/internal/domain/note"
	"github.com/rpggio/personalos/internal/domain/task"
	"github.com/rpggio/personalos/internal/domain/timesession"
	"github.com/rpggio/personalos/internal/logging"
)

// TaskService defines task operations needed by MCP.
type TaskService interface {
	GetTasksForDate(ctx context.Context, date string) ([]task.Task, error)
	GetTask(ctx context.Context, id int64) (*task.Task, error)
	AddTask(ctx context.Context, in task.NewTask) (int64, error)
	UpdateTask(ctx context.Context, t task.Task) error
	DeleteTask(ctx context.Context, id int64) error
	ToggleCompletion(ctx context.Context, t task.Task) (task.Task, error)
}

// SessionService defines focus session operations needed by MCP.
type SessionService interface {
	GetTodaySessions(ctx context.Context) ([]timesession.TimeSession, error)
	GetSessionsForDate(ctx context.Context, date string) ([]timesession.TimeSession, error)
	GetSessionsForTask(ctx context.Context, taskID int64) ([]timesession.TimeSession, error)
	RecordSession(ctx context.Context, taskID *int64, durationSeconds int64) (int64, error)
	TaskLabel(ctx context.Context, taskID *int64) (string, error)
}

// HabitService defines habit operations needed by MCP.
type HabitService interface {
	GetAllHabits(ctx context.Context) ([]habit.Habit, error)
	GetHabit(ctx context.Context, id int64) (*habit.Habit, error)
	AddHabit(ctx context.Context, title string, routine habit.Routine) (int64, error)
	DeleteHabit(ctx context.Context, id int64) error
	ToggleHabitForDate(ctx context.Context, h habit.Habit, date string) (habit.Habit, error)
}

// NoteService defines note operations needed by MCP.
type NoteService interface {
	GetAllNotes(ctx context.Context) ([]note.Note, error)
	GetNote(ctx context.Context, id int64) (*note.Note, error)
	GetRecentNotes(ctx context.Context, n int) ([]note.Note, error)
	GetDailyNote(ctx context.Context, date string) (*note.Note, error)
	GetNotesByIds(ctx context.Context, ids []int64) ([]note.Note, error)
	SaveNote(ctx context.Context, n note.Note) (int64, error)
	DeleteNote(ctx context.Context, id int64) error
	DailyNoteDraft(ctx context.Context, date string) (note.Note, error)
	Search(ctx context.Context, query string) ([]note.Note, error)
	Backlinks(ctx context.Context, title string, excludeID int64) ([]note.Note, error)
	FindByTitle(ctx context.Context, title string) (*note.Note, error)
}

// DayService defines day operations needed by MCP.
type DayService interface {
	EnsureDay(ctx context.Context, date string) (*day.Day, error)
	PatchDay(ctx context.Context, date string, p day.Patch) (*day.Day, error)
	SetIntention(ctx context.Context, date, intention string) (*day.Day, error)
	SetSummary(ctx context.Context, date, summary string) (*day.Day, error)
	SetMood(ctx context.Context, date string, mood day.Mood) (*day.Day, error)
	AddPlanItem(ctx context.Context, date, text string) (*day.Day, error)
	TogglePlanItem(ctx context.Context, date, id string) (*day.Day, error)
	RemovePlanItem(ctx context.Context, date, id string) (*day.Day, error)
	PinNote(ctx context.Context, date string, noteID int64) (*day.Day, error)
	UnpinNote(ctx context.Context, date string, noteID int64) (*day.Day, error)
}

// ContextService defines aggregation operations needed by MCP.
type ContextService interface {
	GetContext(ctx context.Context, date string) (*daycontext.DayAggregate, error)
	GetTodayContext(ctx context.Context) (*daycontext.DayAggregate, error)
	GetFormattedPrompt(ctx context.Context) (string, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Tasks    TaskService
	Sessions SessionService
	Habits   HabitService
	Notes    NoteService
	Days     DayService
	Context  ContextService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools, resources and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := logging.OrDiscard(cfg.Logger)
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "personalos",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	h := NewHandler(cfg.Services, logger)

	registerDocResources(server, h)

	server.AddReceivingMiddleware(sessionMiddleware())
	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, h)

	return server
}
