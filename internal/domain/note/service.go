package note

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/rpggio/personalos/internal/calendar"
	"github.com/rpggio/personalos/internal/inflight"
	"github.com/rpggio/personalos/internal/logging"
)

// DailyTag is applied to freshly drafted daily notes.
const DailyTag = "daily"

// Service handles note operations.
type Service struct {
	repo    Repository
	dailies inflight.Locker
	logger  *slog.Logger
}

// NewService creates a new note service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logging.OrDiscard(logger)}
}

// GetAllNotes returns every note.
func (s *Service) GetAllNotes(ctx context.Context) ([]Note, error) {
	notes, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	return notes, nil
}

// GetNote returns the note with id, or nil if it does not exist.
func (s *Service) GetNote(ctx context.Context, id int64) (*Note, error) {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting note %d: %w", id, err)
	}
	return n, nil
}

// GetRecentNotes returns up to n notes, most recently updated first.
func (s *Service) GetRecentNotes(ctx context.Context, n int) ([]Note, error) {
	notes, err := s.repo.GetRecent(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("listing recent notes: %w", err)
	}
	return notes, nil
}

// GetDailyNote returns the daily note for date, or nil if none was written.
func (s *Service) GetDailyNote(ctx context.Context, date string) (*Note, error) {
	n, err := s.repo.GetDailyNote(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("getting daily note for %s: %w", date, err)
	}
	return n, nil
}

// GetNotesByIds returns the notes that still exist among ids, in input order.
func (s *Service) GetNotesByIds(ctx context.Context, ids []int64) ([]Note, error) {
	notes, err := s.repo.GetByIds(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("getting notes by id: %w", err)
	}
	return notes, nil
}

// SaveNote creates or updates n and returns its identity.
//
// A general note with neither title nor content is not saved and yields
// identity 0. A new note without a title is saved as UntitledTitle. Only one
// daily note may exist per date; daily saves for a date run one at a time.
func (s *Service) SaveNote(ctx context.Context, n Note) (int64, error) {
	if n.Type == "" {
		n.Type = TypeGeneral
	}
	if n.Type != TypeGeneral && n.Type != TypeDaily {
		return 0, fmt.Errorf("%w: type %q", ErrInvalidInput, n.Type)
	}

	if n.Type == TypeGeneral && strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Content) == "" {
		s.logger.Debug("skipping empty note", "id", n.ID)
		return 0, nil
	}

	n.Tags = NormalizeTags(n.Tags)

	if n.Type == TypeDaily {
		unlock := s.dailies.Lock(n.Date)
		defer unlock()
		if err := s.checkDailyDate(ctx, n); err != nil {
			return 0, err
		}
	}

	if n.ID != 0 {
		if err := s.repo.Update(ctx, n); err != nil {
			return 0, fmt.Errorf("updating note %d: %w", n.ID, err)
		}
		return n.ID, nil
	}

	if strings.TrimSpace(n.Title) == "" {
		n.Title = UntitledTitle
	}
	id, err := s.repo.Add(ctx, n)
	if err != nil {
		return 0, fmt.Errorf("adding note: %w", err)
	}
	return id, nil
}

func (s *Service) checkDailyDate(ctx context.Context, n Note) error {
	if !calendar.Valid(n.Date) {
		return fmt.Errorf("%w: daily note date %q", ErrInvalidInput, n.Date)
	}
	existing, err := s.repo.GetDailyNote(ctx, n.Date)
	if err != nil {
		return fmt.Errorf("checking daily note for %s: %w", n.Date, err)
	}
	if existing != nil && existing.ID != n.ID {
		return fmt.Errorf("%w: %s", ErrDuplicateDailyNote, n.Date)
	}
	return nil
}

// DeleteNote removes a note. Days pinning it keep the dangling id.
func (s *Service) DeleteNote(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting note %d: %w", id, err)
	}
	return nil
}

// DailyNoteDraft returns the stored daily note for date, or an unsaved draft
// titled after the date when there is none.
func (s *Service) DailyNoteDraft(ctx context.Context, date string) (Note, error) {
	short, err := calendar.Short(date)
	if err != nil {
		return Note{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	existing, err := s.GetDailyNote(ctx, date)
	if err != nil {
		return Note{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	return Note{
		Title:   "Daily Note: " + short,
		Content: "",
		Tags:    []string{DailyTag},
		Type:    TypeDaily,
		Date:    date,
	}, nil
}

// Search returns notes whose title, content or tags contain query, most
// recently updated first. An empty query returns every note.
func (s *Service) Search(ctx context.Context, query string) ([]Note, error) {
	notes, err := s.GetAllNotes(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if query == "" || n.Matches(query) {
			out = append(out, n)
		}
	}
	sortByUpdatedDesc(out)
	return out, nil
}

// FindByTitle returns the first note titled title, ignoring case.
func (s *Service) FindByTitle(ctx context.Context, title string) (*Note, error) {
	notes, err := s.GetAllNotes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range notes {
		if strings.EqualFold(notes[i].Title, strings.TrimSpace(title)) {
			return &notes[i], nil
		}
	}
	return nil, nil
}

// Backlinks returns the notes other than excludeID whose content links to title.
func (s *Service) Backlinks(ctx context.Context, title string, excludeID int64) ([]Note, error) {
	notes, err := s.GetAllNotes(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Note, 0)
	for _, n := range notes {
		if n.ID != excludeID && n.LinksTo(title) {
			out = append(out, n)
		}
	}
	return out, nil
}

func sortByUpdatedDesc(notes []Note) {
	slices.SortStableFunc(notes, func(a, b Note) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
}
