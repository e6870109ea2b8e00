package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/finance-tracker/finance_tracker/internal/apperr"
	"github.com/finance-tracker/finance_tracker/internal/identity"
)

const (
	CodeFieldsRequired     = "AllFieldsRequired"
	CodeUserExists         = "UserExists"
	CodeInvalidCredentials = "InvalidCredentials"
	CodePasswordTooLong    = "PasswordTooLong"
)

var validate = validator.New()

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token  string
	Name   string
	UserID string
}

// Service registers accounts and authenticates them into session tokens.
type Service struct {
	users  identity.Repository
	hasher *PasswordHasher
	tokens *TokenService
	logger *slog.Logger
	now    func() time.Time

	// decoy is verified against when the email is unknown so both login
	// failures cost one bcrypt comparison.
	decoy string
}

// NewService wires the auth engine.
func NewService(users identity.Repository, hasher *PasswordHasher, tokens *TokenService, logger *slog.Logger) (*Service, error) {
	decoy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
		decoy:  decoy,
	}, nil
}

// Register creates a new account. It does not issue a token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (identity.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return identity.User{}, apperr.Validation(CodeFieldsRequired).Wrap(err)
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return identity.User{}, apperr.Conflict(CodeUserExists)
	case !errors.Is(err, identity.ErrUserNotFound):
		return identity.User{}, apperr.Internal(fmt.Errorf("lookup user: %w", err))
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return identity.User{}, apperr.Validation(CodePasswordTooLong).Wrap(err)
		}
		return identity.User{}, apperr.Internal(err)
	}

	user := identity.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, identity.ErrUserExists) {
			return identity.User{}, apperr.Conflict(CodeUserExists)
		}
		return identity.User{}, apperr.Internal(fmt.Errorf("create user: %w", err))
	}

	s.logger.Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and issues a session token. Unknown emails and
// wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return LoginResult{}, apperr.Validation(CodeFieldsRequired).Wrap(err)
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			s.hasher.Verify(in.Password, s.decoy)
			return LoginResult{}, apperr.Unauthorized(CodeInvalidCredentials)
		}
		return LoginResult{}, apperr.Internal(fmt.Errorf("lookup user: %w", err))
	}
	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return LoginResult{}, apperr.Unauthorized(CodeInvalidCredentials)
	}

	token, err := s.tokens.Issue(Claims{UserID: user.ID, Name: user.Name})
	if err != nil {
		return LoginResult{}, apperr.Internal(fmt.Errorf("issue token: %w", err))
	}
	s.logger.Debug("user logged in", slog.String("user_id", user.ID))
	return LoginResult{Token: token, Name: user.Name, UserID: user.ID}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
