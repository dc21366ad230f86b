package habit

import "github.com/rpggio/personalos/internal/repository"

// Repository provides persistence for habits.
type Repository interface {
	repository.CRUD[Habit]
}
