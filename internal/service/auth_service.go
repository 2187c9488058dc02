package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"pokemedquest/internal/models"
	"pokemedquest/internal/repository"
	"pokemedquest/internal/security"
	"pokemedquest/internal/validation"
)

// AuthService handles account registration, login and removal
type AuthService struct {
	users  UserStore
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, logger: logger}
}

// Register creates a new account with a hashed password
func (s *AuthService) Register(username, password, role string) (*models.User, error) {
	// Validate inputs
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	accountRole, err := validation.ValidateRole(role)
	if err != nil {
		return nil, err
	}

	// Check if username already exists
	existing, err := s.users.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check existing user: %w", ErrStoreFailure, err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(username, passwordHash, accountRole)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("%w: failed to create user: %w", ErrStoreFailure, err)
	}

	s.logger.Info("user registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

// Login verifies credentials. Unknown usernames and wrong passwords both yield
// ErrInvalidCredentials; only the operator log records which one happened.
func (s *AuthService) Login(username, password string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get user: %w", ErrStoreFailure, err)
	}
	if user == nil {
		s.logger.Info("login failed: unknown username", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		s.logger.Info("login failed: wrong password", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("login succeeded", zap.Int64("user_id", user.ID), zap.String("username", username))
	return user, nil
}

// DeleteAccount removes the account together with its avatar and history.
// Returns false when no such user exists.
func (s *AuthService) DeleteAccount(username string) (bool, error) {
	deleted, err := s.users.DeleteUserByUsername(username)
	if err != nil {
		return false, fmt.Errorf("%w: failed to delete user: %w", ErrStoreFailure, err)
	}
	if deleted {
		s.logger.Info("user deleted", zap.String("username", username))
	}
	return deleted, nil
}

// DeleteAccountAs deletes username on behalf of actor, who must be an admin
// other than the target
func (s *AuthService) DeleteAccountAs(actor *models.User, username string) (bool, error) {
	if !actor.IsAdmin() {
		return false, ErrForbidden
	}
	if actor.Username == username {
		return false, ErrCannotDeleteSelf
	}
	return s.DeleteAccount(username)
}

// GetUser retrieves an account by ID
func (s *AuthService) GetUser(id int64) (*models.User, error) {
	user, err := s.users.GetUserByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get user: %w", ErrStoreFailure, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetUserByUsername retrieves an account by exact username
func (s *AuthService) GetUserByUsername(username string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get user: %w", ErrStoreFailure, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ListUsers returns every account
func (s *AuthService) ListUsers() ([]models.User, error) {
	users, err := s.users.GetAllUsers()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list users: %w", ErrStoreFailure, err)
	}
	return users, nil
}
