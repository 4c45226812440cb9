package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/exercise-tracker/internal/calendar"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

var _ repository.ExerciseRepository = (*DB)(nil)

// CreateExercise appends an entry to a user's log. The owning user must
// exist; the foreign key rejects orphans.
func (db *DB) CreateExercise(ctx context.Context, exercise *model.Exercise) error {
	exercise.ID = xid.New().String()
	exercise.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO exercises (id, user_id, description, duration, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		exercise.ID,
		exercise.UserID,
		exercise.Description,
		exercise.Duration,
		exercise.Date.Format(calendar.StoreLayout),
		exercise.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating exercise for user %s: %w", exercise.UserID, err)
	}

	return nil
}

// FindExercises returns a user's entries matching filter, in insertion order.
//
// BUILDING THE WHERE CLAUSE:
// Only the optional bounds change the SQL text. Values still travel as ?
// parameters; the only thing concatenated is fixed SQL we wrote ourselves.
//
// LIMIT -1:
// SQLite treats a negative LIMIT as "no limit", so repository.NoLimit can be
// passed straight through.
func (db *DB) FindExercises(ctx context.Context, filter repository.ExerciseFilter) ([]model.Exercise, error) {
	conds := []string{"user_id = ?"}
	args := []any{filter.UserID}

	if filter.From != nil {
		conds = append(conds, "date >= ?")
		args = append(args, filter.From.Format(calendar.StoreLayout))
	}
	if filter.To != nil {
		conds = append(conds, "date <= ?")
		args = append(args, filter.To.Format(calendar.StoreLayout))
	}
	args = append(args, filter.Limit)

	query := `SELECT id, user_id, description, duration, date, created_at
		FROM exercises
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY rowid
		LIMIT ?`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: finding exercises for user %s: %w", filter.UserID, err)
	}
	defer rows.Close()

	exercises := make([]model.Exercise, 0)
	for rows.Next() {
		var (
			e   model.Exercise
			day string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.Duration, &day, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning exercise row: %w", err)
		}
		e.Date, err = time.Parse(calendar.StoreLayout, day)
		if err != nil {
			return nil, fmt.Errorf("sqlite: exercise %s has malformed date %q: %w", e.ID, day, err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating exercises: %w", err)
	}

	return exercises, nil
}
