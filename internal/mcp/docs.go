package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayContextURI = "personalos://context/today"
	overviewDocURI  = "personalos://docs/overview"
)

const serverInstructions = `personalos is a local-first store for one person's tasks, focus sessions, habits, notes and days.

Dates are calendar days in the user's local time, written YYYY-MM-DD.

Start with get_today_context (or get_context for another date): it returns the day record, the day's tasks in
working order, focus sessions, the daily note and pinned notes, habit status and metrics in one call.
get_formatted_prompt renders the same picture as plain text.

Writes:
- Tasks: add_task, update_task, toggle_task, delete_task.
- Focus: record_session when a session ends (10 seconds or less is not kept).
- Habits: add_habit, toggle_habit (per date).
- Notes: save_note creates or updates; one daily note per date. Link notes with [[Title]]; follow links with get_outgoing_links and get_backlinks.
- Day: set_intention, set_mood, set_summary, the plan tools (at most 5 items) and pin_note.

Errors come back as tool errors whose text is {"code", "message", "recovery_hint"}.

Read personalos://docs/overview for the data model.
`

const overviewDoc = `# personalos data model

## Task
title, description, isCompleted, scheduledDate (YYYY-MM-DD), priority (low|medium|high), energy (low|medium|deep),
timeEstimate (minutes). A day's tasks are listed incomplete first, then high before medium before low; ties keep
insertion order.

## Focus session
taskId (optional), startTime, endTime, durationSeconds. Sessions of 10 seconds or less are not recorded.
A session whose task was deleted keeps its taskId and is labelled "Unknown Task".

## Habit
title, frequency, routine (morning|evening|anytime), streak, completedDates. Toggling a date adds it when absent
and removes it when present.

## Note
title, content, tags, type (general|daily), date. Tags are lower-cased, trimmed and de-duplicated. A general note
with neither title nor content is not saved; a new note without a title is saved as "Untitled Note". There is at
most one daily note per date.

## Day
One record per date with summary, mood (great|good|neutral|bad|awful), intention, a plan of at most 5 items and
pinned note ids. The record is created on first access. Pins to deleted notes are skipped when aggregating.

## Day context
A read-only view of one date: the day record, its tasks, sessions, the daily note followed by pinned notes,
every habit with whether it was completed that date, and metrics: completionRate (completed/total tasks, 0 with no
tasks), totalFocusMinutes (sum of session seconds / 60) and mood.
`

func registerDocResources(server *sdkmcp.Server, h *Handler) {
	server.AddResource(&sdkmcp.Resource{
		URI:         overviewDocURI,
		Name:        "docs_overview",
		Title:       "personalos data model",
		Description: "Entities, their fields and the rules applied when they are written.",
		MIMEType:    "text/markdown",
		Size:        int64(len(overviewDoc)),
	}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		return &sdkmcp.ReadResourceResult{
			Contents: []*sdkmcp.ResourceContents{{
				URI:      requestedURI(req, overviewDocURI),
				MIMEType: "text/markdown",
				Text:     overviewDoc,
			}},
		}, nil
	})

	server.AddResource(&sdkmcp.Resource{
		URI:         todayContextURI,
		Name:        "context_today",
		Title:       "Today's context",
		Description: "Today's day context rendered as plain text.",
		MIMEType:    "text/plain",
	}, func(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		prompt, err := h.aggregates.GetFormattedPrompt(ctx)
		if err != nil {
			return nil, toAPIError(err)
		}
		return &sdkmcp.ReadResourceResult{
			Contents: []*sdkmcp.ResourceContents{{
				URI:      requestedURI(req, todayContextURI),
				MIMEType: "text/plain",
				Text:     prompt,
			}},
		}, nil
	})
}

func requestedURI(req *sdkmcp.ReadResourceRequest, fallback string) string {
	if req != nil && req.Params != nil && req.Params.URI != "" {
		return req.Params.URI
	}
	return fallback
}
