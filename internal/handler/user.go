package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/exercise-tracker/internal/model"
)

// userDirectory is what UserHandler needs from the service layer.
// *service.UserService satisfies it.
type userDirectory interface {
	Create(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// userResponse is the public projection of a user: id and username only.
// Field order mirrors the payload existing clients were written against.
type userResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// UserHandler serves the user directory endpoints.
type UserHandler struct {
	users  userDirectory
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users userDirectory, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleCreate creates a user.
//
// HTTP: POST /api/users
// REQUEST BODY: {"username": "fcc_test"} (JSON or form-encoded)
// RESPONSE:     {"username": "fcc_test", "_id": "cv37rs3pp9olc6atsptg"}
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.logger.Warn("invalid create user body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.users.Create(r.Context(), string(req.Username))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{Username: user.Username, ID: user.ID})
}

// HandleList returns every user.
//
// HTTP: GET /api/users
// RESPONSE: [{"username": "...", "_id": "..."}, ...]
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userResponse{Username: u.Username, ID: u.ID})
	}
	writeJSON(w, http.StatusOK, resp)
}
