package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/emilythestrangee/qna-forum/backend/internal/auth"
	"github.com/emilythestrangee/qna-forum/backend/internal/logger"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
)

const minPasswordLength = 8

// Register creates an account and signs the caller in. Emails are compared
// case-insensitively.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	const op = "service/auth/Register"

	email := models.NormalizeEmail(req.Email)
	lg := logger.From(ctx).With("op", op, "email", email)

	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		return nil, fmt.Errorf("%s: %w", op, because(ErrInvalidArgument, "name is required"))
	case email == "" || !strings.Contains(email, "@"):
		return nil, fmt.Errorf("%s: %w", op, because(ErrInvalidArgument, "a valid email is required"))
	case utf8.RuneCountInString(req.Password) < minPasswordLength:
		return nil, fmt.Errorf("%s: %w", op, because(ErrInvalidArgument,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength)))
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		lg.Error("hash password", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	now := time.Now().UTC()
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		JoinedAt: now,
	}
	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", op, because(ErrConflict, "email is already registered"))
		}
		return nil, storageErr(lg, op, err, "user not found")
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		lg.Error("issue token", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	lg.Info("user registered", "user_id", user.ID)
	return &models.AuthResponse{Token: token, User: *user, Message: "User registered successfully"}, nil
}

// Login exchanges credentials for a token. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	const op = "service/auth/Login"

	email := models.NormalizeEmail(req.Email)
	lg := logger.From(ctx).With("op", op, "email", email)
	invalid := fmt.Errorf("%s: %w", op, because(ErrUnauthorized, "invalid credentials"))

	user, err := s.storage.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, invalid
		}
		return nil, storageErr(lg, op, err, "user not found")
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		lg.Warn("wrong password", "user_id", user.ID)
		return nil, invalid
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		lg.Error("issue token", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}
	return &models.AuthResponse{Token: token, User: *user, Message: "Login successful"}, nil
}

// Authenticate returns the user id carried by a bearer token.
func (s *Service) Authenticate(token string) (string, error) {
	const op = "service/auth/Authenticate"

	userID, err := s.tokens.Parse(token)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, because(ErrUnauthorized, "invalid or expired token"))
	}
	return userID, nil
}

// Me returns the account of the authenticated caller.
func (s *Service) Me(ctx context.Context, userID string) (*models.User, error) {
	const op = "service/auth/Me"

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	user, err := s.storage.UserByID(ctx, userID)
	if err != nil {
		return nil, storageErr(logger.From(ctx).With("op", op), op, err, "user not found")
	}
	return user, nil
}
