package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// =========================================================================
// FAKE REPOSITORIES
// =========================================================================
//
// Hand-written in-memory implementations of the repository interfaces.
// Set the *Err fields to simulate a failing store.

type fakeUserRepo struct {
	users   map[string]*model.User
	order   []string
	created int
	gets    int

	createErr error
	getErr    error
	listErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = xid.New().String()
	user.CreatedAt = time.Now()
	stored := *user
	f.users[user.ID] = &stored
	f.order = append(f.order, user.ID)
	f.created++
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("User", id)
	}
	result := *u
	return &result, nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context) ([]model.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	users := make([]model.User, 0, len(f.order))
	for _, id := range f.order {
		users = append(users, *f.users[id])
	}
	return users, nil
}

type fakeExerciseRepo struct {
	exercises []model.Exercise
	nextID    int

	createErr error
	findErr   error
	lastQuery repository.ExerciseFilter
}

func (f *fakeExerciseRepo) CreateExercise(_ context.Context, e *model.Exercise) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	e.ID = "exercise-" + string(rune('0'+f.nextID))
	e.CreatedAt = time.Now()
	f.exercises = append(f.exercises, *e)
	return nil
}

func (f *fakeExerciseRepo) FindExercises(_ context.Context, filter repository.ExerciseFilter) ([]model.Exercise, error) {
	f.lastQuery = filter
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := make([]model.Exercise, 0)
	for _, e := range f.exercises {
		if e.UserID != filter.UserID {
			continue
		}
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Date.After(*filter.To) {
			continue
		}
		if filter.Limit >= 0 && len(out) == filter.Limit {
			break
		}
		out = append(out, e)
	}
	return out, nil
}

// =========================================================================
// TEST HELPERS
// =========================================================================

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testServices struct {
	users     *UserService
	exercises *ExerciseService
	userRepo  *fakeUserRepo
	exRepo    *fakeExerciseRepo
}

func newTestServices() *testServices {
	userRepo := newFakeUserRepo()
	exRepo := &fakeExerciseRepo{}
	logger := discardLogger()
	users := NewUserService(userRepo, logger)
	return &testServices{
		users:     users,
		exercises: NewExerciseService(exRepo, users, logger),
		userRepo:  userRepo,
		exRepo:    exRepo,
	}
}
