// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, coerces, orchestrates
//	Repository (Data layer)  → reads/writes the record store
//
// Services accept plain Go values (strings, structs), never *http.Request,
// and return apperror kinds, never HTTP status codes. The handler decides
// what a validation error or a missing user looks like on the wire.
//
// DEPENDENCY INJECTION:
// Services receive repository INTERFACES. Production wires in the SQLite
// store; tests wire in the in-memory fakes from fakes_test.go.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rs/xid"
	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// UserService is the user directory: create, list and resolve users.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates the username and stores a new user.
//
// Usernames are not unique: two users called "alice" get two different ids.
func (s *UserService) Create(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", "Username is required")
	}

	user := &model.User{Username: username}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// List returns every user in store order.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// GetByID resolves a user.
//
// MALFORMED IDS ARE "NOT FOUND":
// An id that is not even a syntactically valid xid cannot name a user, so it
// is reported exactly like an unknown id. The store is never queried for it.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	id = strings.TrimSpace(id)
	if _, err := xid.FromString(id); err != nil {
		return nil, apperror.NotFound("User", id)
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		// NotFound is an expected outcome; only real store failures get logged.
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to get user",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}

	return user, nil
}
