package note

import "github.com/rpggio/personalos/internal/repository"

// Type distinguishes free-form notes from the one-per-day journal note.
type Type string

const (
	TypeGeneral Type = "general"
	TypeDaily   Type = "daily"
)

// UntitledTitle is given to a note saved for the first time without a title.
const UntitledTitle = "Untitled Note"

// Note is a titled markdown document. Date is set for daily notes only.
type Note struct {
	repository.Base
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Type    Type     `json:"type"`
	Date    string   `json:"date,omitempty"`
}

// IsDailyFor reports whether n is the daily note for date.
func (n Note) IsDailyFor(date string) bool {
	return n.Type == TypeDaily && n.Date == date
}
