package day

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/rpggio/personalos/internal/calendar"
	"github.com/rpggio/personalos/internal/inflight"
	"github.com/rpggio/personalos/internal/logging"
	"github.com/rpggio/personalos/internal/repository"
	"github.com/rpggio/personalos/internal/validation"
)

// Service handles day operations.
type Service struct {
	repo     Repository
	validate *validation.Validator
	ensuring inflight.Group[*Day]
	writing  inflight.Locker
	logger   *slog.Logger
}

// NewService creates a new day service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, validate: validation.New(), logger: logging.OrDiscard(logger)}
}

// EnsureDay returns the day row for date, creating it on first access.
//
// Concurrent calls for the same date share one lookup-or-create sequence. If
// creation loses a race against another writer, the row that writer stored
// is looked up and returned instead. The shared sequence ignores the
// cancellation of whichever caller started it.
func (s *Service) EnsureDay(ctx context.Context, date string) (*Day, error) {
	if !calendar.Valid(date) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	detached := context.WithoutCancel(ctx)
	d, _, err := s.ensuring.Do(date, func() (*Day, error) {
		return s.findOrCreate(detached, date)
	})
	if err != nil {
		return nil, err
	}
	return clone(d), nil
}

func (s *Service) findOrCreate(ctx context.Context, date string) (*Day, error) {
	existing, err := s.repo.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("looking up day %s: %w", date, err)
	}
	if existing != nil {
		return existing, nil
	}

	id, err := s.repo.Add(ctx, Day{Date: date, PinnedNoteIDs: []int64{}})
	if err != nil {
		if !errors.Is(err, repository.ErrConstraintViolation) {
			return nil, fmt.Errorf("creating day %s: %w", date, err)
		}
		winner, lookupErr := s.repo.GetByDate(ctx, date)
		if lookupErr == nil && winner != nil {
			s.logger.Info("day creation race recovered", "date", date, "id", winner.ID)
			return winner, nil
		}
		return nil, fmt.Errorf("creating day %s: %w", date, err)
	}

	created, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading created day %s: %w", date, err)
	}
	if created == nil {
		return nil, fmt.Errorf("loading created day %s: %w: row %d missing", date, repository.ErrTransactionAborted, id)
	}
	s.logger.Debug("day created", "date", date, "id", id)
	return created, nil
}

// UpdateDay replaces a stored day row.
func (s *Service) UpdateDay(ctx context.Context, d Day) error {
	if err := s.check(d); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return fmt.Errorf("updating day %s: %w", d.Date, err)
	}
	return nil
}

func (s *Service) check(d Day) error {
	if !calendar.Valid(d.Date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, d.Date)
	}
	if d.Mood != "" {
		if err := s.validate.Var("mood", string(d.Mood), "oneof=great good neutral bad awful"); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidMood, err)
		}
	}
	if len(d.Plan) > MaxPlanItems {
		return fmt.Errorf("%w: %d items", ErrPlanFull, len(d.Plan))
	}
	return nil
}

// Patch holds optional day fields; nil fields keep their stored value.
type Patch struct {
	Summary   *string
	Mood      *Mood
	Intention *string
}

// PatchDay applies the non-nil fields of p to the day for date.
func (s *Service) PatchDay(ctx context.Context, date string, p Patch) (*Day, error) {
	return s.mutate(ctx, date, func(d *Day) error {
		if p.Summary != nil {
			d.Summary = *p.Summary
		}
		if p.Mood != nil {
			d.Mood = *p.Mood
		}
		if p.Intention != nil {
			d.Intention = *p.Intention
		}
		return nil
	})
}

// SetIntention records the day's intention.
func (s *Service) SetIntention(ctx context.Context, date, intention string) (*Day, error) {
	return s.mutate(ctx, date, func(d *Day) error {
		d.Intention = strings.TrimSpace(intention)
		return nil
	})
}

// SetSummary records the day's closing summary.
func (s *Service) SetSummary(ctx context.Context, date, summary string) (*Day, error) {
	return s.mutate(ctx, date, func(d *Day) error {
		d.Summary = strings.TrimSpace(summary)
		return nil
	})
}

// SetMood records the day's mood. An empty mood clears it.
func (s *Service) SetMood(ctx context.Context, date string, mood Mood) (*Day, error) {
	return s.mutate(ctx, date, func(d *Day) error {
		d.Mood = mood
		return nil
	})
}

// AddPlanItem appends an incomplete item to the day's plan.
func (s *Service) AddPlanItem(ctx context.Context, date, text string) (*Day, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidPlanItem
	}
	return s.mutate(ctx, date, func(d *Day) error {
		if len(d.Plan) >= MaxPlanItems {
			return ErrPlanFull
		}
		d.Plan = append(d.Plan, PlanItem{ID: uuid.NewString(), Text: text})
		return nil
	})
}

// TogglePlanItem flips the completion of the plan item with id.
func (s *Service) TogglePlanItem(ctx context.Context, date, id string) (*Day, error) {
	return s.mutate(ctx, date, func(d *Day) error {
		i := slices.IndexFunc(d.Plan, func(p PlanItem) bool { return p.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrPlanItemNotFound, id)
		}
		d.Plan[i].IsCompleted = !d.Plan[i].IsCompleted
		return nil
	})
}

// RemovePlanItem drops the plan item with id.
func (s *Service) RemovePlanItem(ctx context.Context, date, id string) (*Day, error) {
	return s.mutate(ctx, date, func(d *Day) error {
		i := slices.IndexFunc(d.Plan, func(p PlanItem) bool { return p.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrPlanItemNotFound, id)
		}
		d.Plan = slices.Delete(d.Plan, i, i+1)
		return nil
	})
}

// PinNote adds noteID to the day's pinned notes. The note is not checked for
// existence; pins to deleted notes are dropped when the day is aggregated.
func (s *Service) PinNote(ctx context.Context, date string, noteID int64) (*Day, error) {
	return s.mutate(ctx, date, func(d *Day) error {
		if !slices.Contains(d.PinnedNoteIDs, noteID) {
			d.PinnedNoteIDs = append(d.PinnedNoteIDs, noteID)
		}
		return nil
	})
}

// UnpinNote removes noteID from the day's pinned notes.
func (s *Service) UnpinNote(ctx context.Context, date string, noteID int64) (*Day, error) {
	return s.mutate(ctx, date, func(d *Day) error {
		d.PinnedNoteIDs = slices.DeleteFunc(d.PinnedNoteIDs, func(id int64) bool { return id == noteID })
		return nil
	})
}

// mutate ensures the day for date, applies fn and stores the result.
// Mutations of one date run one at a time, each against a fresh read, so
// concurrent writers never overwrite each other's changes.
func (s *Service) mutate(ctx context.Context, date string, fn func(d *Day) error) (*Day, error) {
	ensured, err := s.EnsureDay(ctx, date)
	if err != nil {
		return nil, err
	}

	unlock := s.writing.Lock(date)
	defer unlock()

	// an ensure shared with a reader may predate the last committed mutation
	d, err := s.repo.Get(ctx, ensured.ID)
	if err != nil {
		return nil, fmt.Errorf("loading day %s: %w", date, err)
	}
	if d == nil {
		return nil, fmt.Errorf("loading day %s: %w: row %d missing", date, repository.ErrTransactionAborted, ensured.ID)
	}
	if err := fn(d); err != nil {
		return nil, err
	}
	if err := s.UpdateDay(ctx, *d); err != nil {
		return nil, err
	}

	stored, err := s.repo.Get(ctx, d.ID)
	if err != nil {
		return nil, fmt.Errorf("reloading day %s: %w", date, err)
	}
	if stored == nil {
		return d, nil
	}
	return stored, nil
}

func clone(d *Day) *Day {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Plan = slices.Clone(d.Plan)
	cp.PinnedNoteIDs = slices.Clone(d.PinnedNoteIDs)
	return &cp
}
