package service

import (
	"context"
	"errors"
	"strings"

	"github.com/taskboard/taskboard-go/internal/logging"
	"github.com/taskboard/taskboard-go/internal/model"
	"github.com/taskboard/taskboard-go/internal/repository"
)

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(encodedHash, password string) bool
}

// TokenIssuer issues session tokens for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthService handles authentication business logic.
type AuthService struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// SignUp creates a new user account and signs it in.
func (s *AuthService) SignUp(ctx context.Context, req model.CredentialsRequest) (model.SignUpResponse, error) {
	username, err := normalizeCredentials(req)
	if err != nil {
		return model.SignUpResponse{}, err
	}

	_, err = s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return model.SignUpResponse{}, ErrConflict
	case !errors.Is(err, repository.ErrUserNotFound):
		return model.SignUpResponse{}, internalError(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.SignUpResponse{}, internalError(err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return model.SignUpResponse{}, ErrConflict
		}
		return model.SignUpResponse{}, internalError(err)
	}

	logging.FromContext(ctx).Info("user signed up", "user_id", user.ID)

	signIn, err := s.SignIn(ctx, model.CredentialsRequest{Username: username, Password: req.Password})
	if err != nil {
		return model.SignUpResponse{}, err
	}

	return model.SignUpResponse{
		AccessToken:  signIn.AccessToken,
		UserResponse: model.NewUserResponse(user),
	}, nil
}

// SignIn authenticates a user and returns a session token.
func (s *AuthService) SignIn(ctx context.Context, req model.CredentialsRequest) (model.SignInResponse, error) {
	username, err := normalizeCredentials(req)
	if err != nil {
		return model.SignInResponse{}, err
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logging.FromContext(ctx).Warn("sign in failed", "reason", "unknown username")
			return model.SignInResponse{}, ErrInvalidCredentials
		}
		return model.SignInResponse{}, internalError(err)
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		logging.FromContext(ctx).Warn("sign in failed", "reason", "password mismatch", "user_id", user.ID)
		return model.SignInResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return model.SignInResponse{}, internalError(err)
	}

	return model.SignInResponse{AccessToken: token}, nil
}

// CurrentUser returns the public fields of the authenticated user.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, internalError(err)
	}

	return model.NewUserResponse(user), nil
}

// normalizeCredentials lowercases the username and checks both fields are present.
func normalizeCredentials(req model.CredentialsRequest) (string, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" || req.Password == "" {
		return "", ErrMissingCredential
	}
	return username, nil
}
