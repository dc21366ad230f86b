package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rpggio/personalos/internal/domain/day"
	"github.com/rpggio/personalos/internal/domain/habit"
	"github.com/rpggio/personalos/internal/domain/note"
	"github.com/rpggio/personalos/internal/domain/task"
	"github.com/rpggio/personalos/internal/domain/timesession"
)

// TaskRepository is a mock for task.Repository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Get(ctx context.Context, id int64) (*task.Task, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) GetAll(ctx context.Context) ([]task.Task, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) Add(ctx context.Context, item task.Task) (int64, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, item task.Task) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *TaskRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TaskRepository) GetByDate(ctx context.Context, date string) ([]task.Task, error) {
	args := m.Called(ctx, date)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// TimeSessionRepository is a mock for timesession.Repository.
type TimeSessionRepository struct {
	mock.Mock
}

func (m *TimeSessionRepository) Get(ctx context.Context, id int64) (*timesession.TimeSession, error) {
	args := m.Called(ctx, id)
	if sess, ok := args.Get(0).(*timesession.TimeSession); ok {
		return sess, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimeSessionRepository) GetAll(ctx context.Context) ([]timesession.TimeSession, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]timesession.TimeSession); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimeSessionRepository) Add(ctx context.Context, item timesession.TimeSession) (int64, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TimeSessionRepository) Update(ctx context.Context, item timesession.TimeSession) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *TimeSessionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TimeSessionRepository) GetSessionsByDate(ctx context.Context, date time.Time) ([]timesession.TimeSession, error) {
	args := m.Called(ctx, date)
	if list, ok := args.Get(0).([]timesession.TimeSession); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimeSessionRepository) GetTodaySessions(ctx context.Context) ([]timesession.TimeSession, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]timesession.TimeSession); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// HabitRepository is a mock for habit.Repository.
type HabitRepository struct {
	mock.Mock
}

func (m *HabitRepository) Get(ctx context.Context, id int64) (*habit.Habit, error) {
	args := m.Called(ctx, id)
	if h, ok := args.Get(0).(*habit.Habit); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *HabitRepository) GetAll(ctx context.Context) ([]habit.Habit, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]habit.Habit); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *HabitRepository) Add(ctx context.Context, item habit.Habit) (int64, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *HabitRepository) Update(ctx context.Context, item habit.Habit) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *HabitRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// NoteRepository is a mock for note.Repository.
type NoteRepository struct {
	mock.Mock
}

func (m *NoteRepository) Get(ctx context.Context, id int64) (*note.Note, error) {
	args := m.Called(ctx, id)
	if n, ok := args.Get(0).(*note.Note); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NoteRepository) GetAll(ctx context.Context) ([]note.Note, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]note.Note); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NoteRepository) Add(ctx context.Context, item note.Note) (int64, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NoteRepository) Update(ctx context.Context, item note.Note) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *NoteRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *NoteRepository) GetDailyNote(ctx context.Context, date string) (*note.Note, error) {
	args := m.Called(ctx, date)
	if n, ok := args.Get(0).(*note.Note); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NoteRepository) GetRecent(ctx context.Context, n int) ([]note.Note, error) {
	args := m.Called(ctx, n)
	if list, ok := args.Get(0).([]note.Note); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NoteRepository) GetByIds(ctx context.Context, ids []int64) ([]note.Note, error) {
	args := m.Called(ctx, ids)
	if list, ok := args.Get(0).([]note.Note); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// DayRepository is a mock for day.Repository.
type DayRepository struct {
	mock.Mock
}

func (m *DayRepository) Get(ctx context.Context, id int64) (*day.Day, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*day.Day); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DayRepository) GetAll(ctx context.Context) ([]day.Day, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]day.Day); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DayRepository) Add(ctx context.Context, item day.Day) (int64, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DayRepository) Update(ctx context.Context, item day.Day) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *DayRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DayRepository) GetByDate(ctx context.Context, date string) (*day.Day, error) {
	args := m.Called(ctx, date)
	if d, ok := args.Get(0).(*day.Day); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}
