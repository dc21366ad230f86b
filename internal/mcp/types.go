package mcp

type EmptyParams struct{}

type DateParams struct {
	Date string `json:"date" jsonschema:"calendar day as YYYY-MM-DD"`
}

type IDParams struct {
	ID int64 `json:"id" jsonschema:"entity id"`
}

type AddTaskParams struct {
	Title         string `json:"title" jsonschema:"task title"`
	Description   string `json:"description,omitempty"`
	ScheduledDate string `json:"scheduledDate,omitempty" jsonschema:"YYYY-MM-DD, defaults to today"`
	Priority      string `json:"priority,omitempty" jsonschema:"low, medium or high; defaults to medium"`
	Energy        string `json:"energy,omitempty" jsonschema:"low, medium or deep; defaults to medium"`
	TimeEstimate  *int   `json:"timeEstimate,omitempty" jsonschema:"estimate in minutes"`
}

// UpdateTaskParams patches a task; omitted fields keep their stored value.
type UpdateTaskParams struct {
	ID            int64   `json:"id" jsonschema:"task id"`
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	IsCompleted   *bool   `json:"isCompleted,omitempty"`
	ScheduledDate *string `json:"scheduledDate,omitempty" jsonschema:"YYYY-MM-DD"`
	Priority      *string `json:"priority,omitempty" jsonschema:"low, medium or high"`
	Energy        *string `json:"energy,omitempty" jsonschema:"low, medium or deep"`
	TimeEstimate  *int    `json:"timeEstimate,omitempty" jsonschema:"estimate in minutes"`
}

type TaskRefParams struct {
	TaskID int64 `json:"taskId" jsonschema:"task id"`
}

type RecordSessionParams struct {
	TaskID          *int64 `json:"taskId,omitempty" jsonschema:"task the focus time counts toward; omit for free focus"`
	DurationSeconds int64  `json:"durationSeconds" jsonschema:"session length; 10 seconds or less is not recorded"`
}

type SessionLabelParams struct {
	TaskID *int64 `json:"taskId,omitempty" jsonschema:"task id of the session, if any"`
}

type AddHabitParams struct {
	Title   string `json:"title" jsonschema:"habit title"`
	Routine string `json:"routine,omitempty" jsonschema:"morning, evening or anytime; defaults to anytime"`
}

type ToggleHabitParams struct {
	ID   int64  `json:"id" jsonschema:"habit id"`
	Date string `json:"date" jsonschema:"calendar day as YYYY-MM-DD"`
}

type RecentNotesParams struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum notes to return, defaults to 5"`
}

type NotesByIDsParams struct {
	IDs []int64 `json:"ids" jsonschema:"note ids; missing ids are skipped"`
}

// SaveNoteParams creates a note when ID is zero and patches it otherwise.
type SaveNoteParams struct {
	ID      int64    `json:"id,omitempty" jsonschema:"note id to update; omit to create"`
	Title   *string  `json:"title,omitempty"`
	Content *string  `json:"content,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Type    *string  `json:"type,omitempty" jsonschema:"general or daily"`
	Date    *string  `json:"date,omitempty" jsonschema:"YYYY-MM-DD, required for daily notes"`
}

type SearchNotesParams struct {
	Query string `json:"query,omitempty" jsonschema:"text matched against title, content and tags"`
}

type BacklinksParams struct {
	Title     string `json:"title" jsonschema:"title referenced as [[title]]"`
	ExcludeID int64  `json:"excludeId,omitempty" jsonschema:"note id to leave out, usually the note itself"`
}

// UpdateDayParams patches a day; omitted fields keep their stored value.
type UpdateDayParams struct {
	Date      string  `json:"date" jsonschema:"calendar day as YYYY-MM-DD"`
	Summary   *string `json:"summary,omitempty"`
	Mood      *string `json:"mood,omitempty" jsonschema:"great, good, neutral, bad or awful"`
	Intention *string `json:"intention,omitempty"`
}

type DayTextParams struct {
	Date string `json:"date" jsonschema:"calendar day as YYYY-MM-DD"`
	Text string `json:"text"`
}

type MoodParams struct {
	Date string `json:"date" jsonschema:"calendar day as YYYY-MM-DD"`
	Mood string `json:"mood" jsonschema:"great, good, neutral, bad or awful; empty clears it"`
}

type PlanItemParams struct {
	Date   string `json:"date" jsonschema:"calendar day as YYYY-MM-DD"`
	ItemID string `json:"itemId" jsonschema:"plan item id"`
}

type PinNoteParams struct {
	Date   string `json:"date" jsonschema:"calendar day as YYYY-MM-DD"`
	NoteID int64  `json:"noteId" jsonschema:"note id"`
}

type IDResponse struct {
	ID int64 `json:"id"`
}

type DeletedResponse struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

// LinkResponse is one [[title]] reference of a note. NoteID is absent when no
// note has the title.
type LinkResponse struct {
	Title  string `json:"title"`
	NoteID *int64 `json:"noteId,omitempty"`
}

type LabelResponse struct {
	Label string `json:"label"`
}

type PromptResponse struct {
	Prompt string `json:"prompt"`
}
