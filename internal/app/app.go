// Package app wires the store, repositories and domain services together.
package app

import (
	"log/slog"

	"github.com/rpggio/personalos/internal/domain/day"
	"github.com/rpggio/personalos/internal/domain/daycontext"
	"github.com/rpggio/personalos/internal/domain/habit"
	"github.com/rpggio/personalos/internal/domain/note"
	"github.com/rpggio/personalos/internal/domain/task"
	"github.com/rpggio/personalos/internal/domain/timesession"
	"github.com/rpggio/personalos/internal/mcp"
	"github.com/rpggio/personalos/internal/sqlite"
)

// App holds the domain services of one store.
type App struct {
	DB       *sqlite.DB
	Repos    *sqlite.Repositories
	Tasks    *task.Service
	Sessions *timesession.Service
	Habits   *habit.Service
	Notes    *note.Service
	Days     *day.Service
	Context  *daycontext.Service
}

// New builds the services over db. The store is opened lazily by the first operation.
func New(db *sqlite.DB, logger *slog.Logger) *App {
	repos := sqlite.NewRepositories(db)

	tasks := task.NewService(repos.Tasks, logger)
	sessions := timesession.NewService(repos.Sessions, repos.Tasks, logger)
	habits := habit.NewService(repos.Habits, logger)
	notes := note.NewService(repos.Notes, logger)
	days := day.NewService(repos.Days, logger)
	ctxSvc := daycontext.NewService(daycontext.Deps{
		Days:     days,
		Tasks:    tasks,
		Sessions: sessions,
		Habits:   habits,
		Notes:    notes,
	}, logger)

	return &App{
		DB:       db,
		Repos:    repos,
		Tasks:    tasks,
		Sessions: sessions,
		Habits:   habits,
		Notes:    notes,
		Days:     days,
		Context:  ctxSvc,
	}
}

// MCPServices exposes the services to the MCP server.
func (a *App) MCPServices() mcp.Services {
	return mcp.Services{
		Tasks:    a.Tasks,
		Sessions: a.Sessions,
		Habits:   a.Habits,
		Notes:    a.Notes,
		Days:     a.Days,
		Context:  a.Context,
	}
}
