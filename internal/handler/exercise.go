package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/exercise-tracker/internal/model"
)

// ParamUserID is the route parameter carrying the user id, as in
// /api/users/{_id}/logs.
const ParamUserID = "_id"

// exerciseLog is what ExerciseHandler needs from the service layer.
// *service.ExerciseService satisfies it.
type exerciseLog interface {
	Add(ctx context.Context, userID string, in model.NewExercise) (*model.EntrySummary, error)
	Log(ctx context.Context, userID string, q model.LogQuery) (*model.LogView, error)
}

// ExerciseHandler serves the exercise log endpoints.
type ExerciseHandler struct {
	exercises exerciseLog
	logger    *slog.Logger
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exercises exerciseLog, logger *slog.Logger) *ExerciseHandler {
	return &ExerciseHandler{exercises: exercises, logger: logger}
}

// HandleAdd appends an exercise to a user's log.
//
// HTTP: POST /api/users/{_id}/exercises
// REQUEST BODY: {"description": "run", "duration": "15", "date": "2024-03-01"}
// RESPONSE:     {"_id", "username", "description", "duration", "date": "Fri Mar 01 2024"}
//
// URL PARAMETERS:
// chi.URLParam reads {_id} from the matched route pattern.
func (h *ExerciseHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req addExerciseRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.logger.Warn("invalid add exercise body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	summary, err := h.exercises.Add(r.Context(), chi.URLParam(r, ParamUserID), model.NewExercise{
		Description: string(req.Description),
		Duration:    string(req.Duration),
		Date:        string(req.Date),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HandleLog returns a filtered view of a user's log.
//
// HTTP: GET /api/users/{_id}/logs?from=2024-01-01&to=2024-01-31&limit=2
// RESPONSE: {"_id", "username", "count", "log": [{"description", "duration", "date"}]}
//
// All query parameters are optional. Values that do not parse are ignored.
func (h *ExerciseHandler) HandleLog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	view, err := h.exercises.Log(r.Context(), chi.URLParam(r, ParamUserID), model.LogQuery{
		From:  query.Get("from"),
		To:    query.Get("to"),
		Limit: query.Get("limit"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
