package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// addTool registers fn as a tool whose result is returned as JSON text.
// Errors become tool errors carrying an APIError payload.
func addTool[In any](server *sdkmcp.Server, h *Handler, name, description string, fn func(context.Context, In) (any, error)) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		start := time.Now()
		out, err := fn(ctx, in)
		if err != nil {
			apiErr := toAPIError(err)
			h.logger.Debug("tool failed", "tool", name, "code", apiErr.Code, "error", err, "elapsed", time.Since(start))
			return errorResult(apiErr), nil, nil
		}
		res, err := jsonResult(out)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", name, err)
		}
		return res, nil, nil
	})
}

func jsonResult(v any) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}

func errorResult(apiErr *APIError) *sdkmcp.CallToolResult {
	data, err := json.Marshal(apiErr)
	if err != nil {
		data = []byte(apiErr.Error())
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}

func registerTools(server *sdkmcp.Server, h *Handler) {
	// Tasks
	addTool(server, h, "get_tasks_for_date", "List the tasks scheduled on a day, incomplete first then by priority", h.GetTasksForDate)
	addTool(server, h, "add_task", "Create an incomplete task; returns its id", h.AddTask)
	addTool(server, h, "update_task", "Update fields of a task; omitted fields are unchanged", h.UpdateTask)
	addTool(server, h, "delete_task", "Delete a task by id", h.DeleteTask)
	addTool(server, h, "toggle_task", "Flip the completion of a task and return it", h.ToggleTask)

	// Focus sessions
	addTool(server, h, "get_today_sessions", "List focus sessions started today", h.GetTodaySessions)
	addTool(server, h, "get_sessions_for_date", "List focus sessions started on a day", h.GetSessionsForDate)
	addTool(server, h, "get_sessions_for_task", "List focus sessions attributed to a task, newest first", h.GetSessionsForTask)
	addTool(server, h, "record_session", "Record a focus session that just ended; sessions of 10 seconds or less return id 0", h.RecordSession)
	addTool(server, h, "get_session_label", "Name the task a session counts toward", h.GetSessionLabel)

	// Habits
	addTool(server, h, "list_habits", "List every habit with its completion dates", h.ListHabits)
	addTool(server, h, "add_habit", "Create a daily habit; returns its id", h.AddHabit)
	addTool(server, h, "delete_habit", "Delete a habit by id", h.DeleteHabit)
	addTool(server, h, "toggle_habit", "Flip whether a habit was completed on a day", h.ToggleHabit)

	// Notes
	addTool(server, h, "list_notes", "List every note", h.ListNotes)
	addTool(server, h, "get_recent_notes", "List the most recently updated notes", h.GetRecentNotes)
	addTool(server, h, "get_daily_note", "Get the daily note of a day, or null", h.GetDailyNote)
	addTool(server, h, "get_daily_note_draft", "Get the daily note of a day, or an unsaved draft to start one", h.GetDailyNoteDraft)
	addTool(server, h, "get_notes_by_ids", "Get notes by id in the given order, skipping missing ones", h.GetNotesByIDs)
	addTool(server, h, "save_note", "Create a note, or update the note with the given id; returns its id (0 when an empty note was skipped)", h.SaveNote)
	addTool(server, h, "delete_note", "Delete a note by id", h.DeleteNote)
	addTool(server, h, "search_notes", "Search notes by title, content and tags, newest first", h.SearchNotes)
	addTool(server, h, "get_backlinks", "List notes whose content links to a title with [[title]]", h.GetBacklinks)
	addTool(server, h, "get_outgoing_links", "List the [[title]] links in a note, resolved to note ids where a note has the title", h.GetOutgoingLinks)

	// Days
	addTool(server, h, "ensure_day", "Get the day record of a date, creating it on first access", h.EnsureDay)
	addTool(server, h, "update_day", "Update summary, mood or intention of a day", h.UpdateDay)
	addTool(server, h, "set_intention", "Set the intention of a day", h.SetIntention)
	addTool(server, h, "set_summary", "Set the closing summary of a day", h.SetSummary)
	addTool(server, h, "set_mood", "Set the mood of a day: great, good, neutral, bad or awful", h.SetMood)
	addTool(server, h, "add_plan_item", "Append an item to a day's plan (at most 5)", h.AddPlanItem)
	addTool(server, h, "toggle_plan_item", "Flip the completion of a plan item", h.TogglePlanItem)
	addTool(server, h, "remove_plan_item", "Remove a plan item", h.RemovePlanItem)
	addTool(server, h, "pin_note", "Pin a note to a day", h.PinNote)
	addTool(server, h, "unpin_note", "Unpin a note from a day", h.UnpinNote)

	// Aggregation
	addTool(server, h, "get_context", "Aggregate everything recorded for a day: tasks, sessions, notes, habits and metrics", h.GetContext)
	addTool(server, h, "get_today_context", "Aggregate everything recorded today", h.GetTodayContext)
	addTool(server, h, "get_formatted_prompt", "Render today's context as plain text for an assistant", h.GetFormattedPrompt)
}
