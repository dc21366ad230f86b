package daycontext

import (
	"fmt"
	"math"
	"strings"

	"github.com/rpggio/personalos/internal/domain/note"
	"github.com/rpggio/personalos/internal/domain/task"
)

// FormatPrompt renders agg and the titles of recent as the plain-text context
// handed to the advice generator.
func FormatPrompt(agg *DayAggregate, recent []note.Note) string {
	mood := string(agg.Overview.Mood)
	if mood == "" {
		mood = "Unknown"
	}
	intention := agg.Overview.Intention
	if intention == "" {
		intention = "Not set"
	}

	plan := "Empty"
	if len(agg.Overview.Plan) > 0 {
		items := make([]string, len(agg.Overview.Plan))
		for i, p := range agg.Overview.Plan {
			mark := " "
			if p.IsCompleted {
				mark = "x"
			}
			items[i] = fmt.Sprintf("[%s] %s", mark, p.Text)
		}
		plan = strings.Join(items, ", ")
	}

	pending := 0
	var high []string
	for _, t := range agg.Tasks {
		if t.IsCompleted {
			continue
		}
		pending++
		if t.Priority == task.PriorityHigh {
			high = append(high, t.Title)
		}
	}

	done := 0
	for _, h := range agg.Habits {
		if h.IsCompleted {
			done++
		}
	}

	titles := make([]string, len(recent))
	for i, n := range recent {
		titles[i] = n.Title
	}

	var b strings.Builder
	b.WriteString("Current Context:\n")
	fmt.Fprintf(&b, "- Date: %s (Today)\n", agg.Date)
	fmt.Fprintf(&b, "- Mood: %s\n", mood)
	fmt.Fprintf(&b, "- Daily Intention: \"%s\"\n", intention)
	fmt.Fprintf(&b, "- Current Plan: %s\n", plan)
	fmt.Fprintf(&b, "- Tasks: %d pending (%d high priority: %s)\n", pending, len(high), strings.Join(high, ", "))
	fmt.Fprintf(&b, "- Habits: %d/%d done today.\n", done, len(agg.Habits))
	fmt.Fprintf(&b, "- Focus Today: %d minutes.\n", int(math.Round(agg.Metrics.TotalFocusMinutes)))
	fmt.Fprintf(&b, "- Recent Thinking: %s\n", strings.Join(titles, ", "))
	return b.String()
}
