package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/calendar"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// Validation messages. Clients match on these strings, keep them stable.
const (
	MsgRequired      = "Description and duration are required"
	MsgDurationNaN   = "Duration must be a number"
	MsgInvalidDate   = "Invalid date format"
	maxDurationValue = float64(math.MaxInt32)
)

// userResolver is the slice of the user directory the log manager needs.
// *UserService satisfies it.
type userResolver interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// ExerciseService is the exercise log manager: it appends entries to a
// user's log and builds filtered views of it.
//
// DEPENDENCIES:
//   - exercises repository.ExerciseRepository → append/query entries
//   - users     userResolver                  → "does this user exist?"
//   - now       func() time.Time              → today's date for undated entries
type ExerciseService struct {
	exercises repository.ExerciseRepository
	users     userResolver
	logger    *slog.Logger
	now       func() time.Time
}

// NewExerciseService creates a new ExerciseService.
func NewExerciseService(exercises repository.ExerciseRepository, users userResolver, logger *slog.Logger) *ExerciseService {
	return &ExerciseService{
		exercises: exercises,
		users:     users,
		logger:    logger,
		now:       time.Now,
	}
}

// Add validates the input, resolves the owner and appends a new entry.
//
// VALIDATION ORDER:
// Input is checked before the user is looked up, so a request that is wrong
// on both counts reports the validation problem:
//  1. description and duration must both be present
//  2. duration must be a finite number (fraction truncated, "30.9" → 30)
//  3. date, when given, must be a real calendar date
//  4. the user must exist
func (s *ExerciseService) Add(ctx context.Context, userID string, in model.NewExercise) (*model.EntrySummary, error) {
	description := strings.TrimSpace(in.Description)
	rawDuration := strings.TrimSpace(in.Duration)
	if description == "" || rawDuration == "" {
		return nil, apperror.ValidationFailed("description", MsgRequired)
	}

	duration, err := parseDuration(rawDuration)
	if err != nil {
		return nil, err
	}

	date := calendar.Day(s.now())
	if raw := strings.TrimSpace(in.Date); raw != "" {
		date, err = calendar.Parse(raw)
		if err != nil {
			return nil, apperror.ValidationFailed("date", MsgInvalidDate)
		}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exercise := &model.Exercise{
		UserID:      user.ID,
		Description: description,
		Duration:    duration,
		Date:        date,
	}
	if err := s.exercises.CreateExercise(ctx, exercise); err != nil {
		s.logger.Error("failed to add exercise",
			slog.String("userID", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("adding exercise: %w", err)
	}

	s.logger.Info("exercise added",
		slog.String("id", exercise.ID),
		slog.String("userID", user.ID),
		slog.Int("duration", exercise.Duration),
		slog.String("date", exercise.Date.Format(calendar.StoreLayout)),
	)

	return &model.EntrySummary{
		UserID:      user.ID,
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        calendar.Format(exercise.Date),
	}, nil
}

// Log returns the user's entries filtered by q.
//
// LENIENT READ PATH:
// Unlike Add, nothing in q is ever rejected. A from/to that does not parse
// is dropped, as is a limit that is not a non-negative integer. Entries come
// back in insertion order; they are not re-sorted by date.
func (s *ExerciseService) Log(ctx context.Context, userID string, q model.LogQuery) (*model.LogView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := repository.ExerciseFilter{
		UserID: user.ID,
		Limit:  parseLimit(q.Limit),
	}
	if from, err := calendar.Parse(q.From); err == nil {
		filter.From = &from
	}
	if to, err := calendar.Parse(q.To); err == nil {
		filter.To = &to
	}

	exercises, err := s.exercises.FindExercises(ctx, filter)
	if err != nil {
		s.logger.Error("failed to load exercise log",
			slog.String("userID", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("loading exercise log: %w", err)
	}

	log := make([]model.LogEntry, 0, len(exercises))
	for _, e := range exercises {
		log = append(log, model.LogEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        calendar.Format(e.Date),
		})
	}

	return &model.LogView{
		UserID:   user.ID,
		Username: user.Username,
		Count:    len(log),
		Log:      log,
	}, nil
}

// parseDuration coerces raw input to whole minutes. Any finite number is
// accepted and truncated toward zero; NaN, ±Inf and out-of-range values are
// treated as non-numeric.
func parseDuration(raw string) (int, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxDurationValue {
		return 0, apperror.ValidationFailed("duration", MsgDurationNaN)
	}
	return int(math.Trunc(f)), nil
}

// parseLimit returns repository.NoLimit for anything that is not a
// non-negative integer.
func parseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return repository.NoLimit
	}
	return n
}
