// Package repository declares the record-store contracts the services depend on.
//
// The services only ever see these interfaces; internal/repository/sqlite is
// the production implementation and tests use in-memory fakes.
package repository

import (
	"context"
	"time"

	"github.com/sakif/exercise-tracker/internal/model"
)

// NoLimit disables truncation in ExerciseFilter.
const NoLimit = -1

// ExerciseFilter narrows a user's log. From and To are inclusive calendar-day
// bounds; nil means unbounded. Limit < 0 means no limit, 0 returns nothing.
type ExerciseFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
	Limit  int
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

// ExerciseRepository stores entries separately from users, joined by user id.
// Entries are append-only: there is no update or delete.
type ExerciseRepository interface {
	CreateExercise(ctx context.Context, exercise *model.Exercise) error
	FindExercises(ctx context.Context, filter ExerciseFilter) ([]model.Exercise, error)
}
